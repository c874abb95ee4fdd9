package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// UID приводит идентификатор пользователя к строке: удалённый API
// отдаёт его то числом, то строкой.
func UID(u models.User) string {
	switch v := u.UID.(type) {
	case nil:
		return u.ID
	case float64:
		return fmt.Sprintf("%.0f", v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderUsers печатает страницу пользователей таблицей.
func RenderUsers(w io.Writer, p Page[models.User], all int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tNAME\tUSERNAME\tEMAIL\tROLE\tSUBSCRIPTION")
	for _, u := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			UID(u), orDash(u.Name), orDash(u.Username), orDash(u.Email), orDash(u.Role), orDash(u.SubscriptionStatus))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, p.Start, p.End, p.Total, p.Page, p.TotalPages, all, "users")
}

// RenderUser печатает карточку пользователя.
func RenderUser(w io.Writer, u models.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"UID", UID(u)},
		{"Name", u.Name},
		{"Username", u.Username},
		{"Email", u.Email},
		{"Role", u.Role},
		{"User type", u.UserType},
		{"Subscription", u.SubscriptionStatus},
		{"Subscription ends", u.SubscriptionEndDate},
		{"Created", u.CreatedAt},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], orDash(r[1]))
	}
	return tw.Flush()
}

// RenderMagazines печатает страницу журналов таблицей.
func RenderMagazines(w io.Writer, p Page[models.Magazine], all int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tTYPE\tKIND\tDOWNLOADS")
	for _, m := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			orDash(m.Name), orDash(m.Category), orDash(m.Type), orDash(m.MagzineType), m.Downloads)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, p.Start, p.End, p.Total, p.Page, p.TotalPages, all, "magazines")
}

// RenderStats печатает сводку по журналам.
func RenderStats(w io.Writer, s Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total:\t%d\n", s.Total)
	fmt.Fprintf(tw, "Magazines:\t%d\n", s.Magazines)
	fmt.Fprintf(tw, "Articles:\t%d\n", s.Articles)
	fmt.Fprintf(tw, "Digests:\t%d\n", s.Digests)
	fmt.Fprintf(tw, "Free:\t%d\n", s.Free)
	fmt.Fprintf(tw, "Pro:\t%d\n", s.Pro)
	fmt.Fprintf(tw, "Downloads:\t%d\n", s.Downloads)
	return tw.Flush()
}

func footer(w io.Writer, start, end, total, page, pages, all int, noun string) error {
	if total == 0 {
		_, err := fmt.Fprintf(w, "No %s found\n", noun)
		return err
	}
	_, err := fmt.Fprintf(w, "\nShowing %d-%d of %d (page %d/%d, %d %s total)\n",
		start+1, end, total, page, pages, all, noun)
	return err
}
