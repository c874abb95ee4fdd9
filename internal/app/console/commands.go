package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	adminclient "github.com/magabrotheeeer/magazine-admin/internal/console"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/upload"
	"github.com/magabrotheeeer/magazine-admin/internal/view"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "administrator email")
	password := fs.String("password", "", "password; prompted when empty")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.prompt("Email: "); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = a.prompt("Password: "); err != nil {
			return err
		}
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	res := a.client.Login(ctx, adminclient.LoginRequest{Email: *email, Password: *password})
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", res.User.Name, res.User.Email)
	return nil
}

func (a *App) logout() error {
	a.client.Logout()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) whoami() error {
	u := a.client.CurrentUser()
	if u == nil {
		return errors.New("not signed in")
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s type=%s\n", u.Name, u.Email, u.Role, u.UserType)
	return nil
}

func (a *App) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.subUsage("users list|show|delete")
	}
	switch args[0] {
	case "list":
		fs := a.flags("users list")
		q := fs.String("q", "", "search by name, username, email or role")
		page := fs.Int("page", 1, "page number")
		if _, err := parse(fs, args[1:]); err != nil {
			return err
		}
		return a.listUsers(ctx, *q, *page)

	case "show":
		uid, err := a.oneArg("users show", args[1:])
		if err != nil {
			return err
		}
		res := a.client.GetUserDetails(ctx, uid)
		if !res.Success {
			return a.fail(res.Message)
		}
		return view.RenderUser(a.out, res.Data)

	case "delete":
		fs := a.flags("users delete")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		rest, err := parse(fs, args[1:])
		if err != nil {
			return err
		}
		if len(rest) != 1 {
			return a.subUsage("users delete [-yes] <uid>")
		}
		uid := rest[0]
		if !*yes && !a.confirm(fmt.Sprintf("Are you sure you want to delete user %s?", uid)) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		res := a.client.DeleteUser(ctx, uid)
		if !res.Success {
			return a.fail(res.Message)
		}
		a.log.Info("user deleted", slog.String("uid", uid))
		fmt.Fprintln(a.out, "User deleted successfully")
		return a.listUsers(ctx, "", 1)
	}
	return a.subUsage("users list|show|delete")
}

func (a *App) listUsers(ctx context.Context, q string, page int) error {
	res := a.client.FetchUsers(ctx)
	if !res.Success {
		return a.fail(res.Message)
	}
	filtered := view.Filter(res.Data, q, view.UserFields)
	return view.RenderUsers(a.out, view.Paginate(filtered, page, a.cfg.PageSize), len(res.Data))
}

func (a *App) magazines(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.subUsage("magazines list|stats|create")
	}
	switch args[0] {
	case "list":
		fs := a.flags("magazines list")
		q := fs.String("q", "", "search by name, category, type, kind or description")
		page := fs.Int("page", 1, "page number")
		if _, err := parse(fs, args[1:]); err != nil {
			return err
		}
		res := a.client.FetchMagazines(ctx)
		if !res.Success {
			return a.fail(res.Message)
		}
		filtered := view.Filter(res.Data, *q, view.MagazineFields)
		return view.RenderMagazines(a.out, view.Paginate(filtered, *page, a.cfg.PageSize), len(res.Data))

	case "stats":
		res := a.client.FetchMagazines(ctx)
		if !res.Success {
			return a.fail(res.Message)
		}
		return view.RenderStats(a.out, view.MagazineStats(res.Data))

	case "create":
		return a.createMagazine(ctx, args[1:])
	}
	return a.subUsage("magazines list|stats|create")
}

func (a *App) createMagazine(ctx context.Context, args []string) error {
	fs := a.flags("magazines create")
	var form adminclient.PublishForm
	fs.StringVar(&form.Name, "name", "", "magazine name")
	fs.StringVar(&form.Description, "description", "", "description")
	fs.StringVar(&form.Category, "category", "", "category")
	fs.StringVar(&form.Type, "type", "free", "free or pro")
	fs.StringVar(&form.MagzineType, "kind", "magzine", "magzine, article or digest")
	coverPath := fs.String("cover", "", "cover image path")
	pdfPath := fs.String("pdf", "", "PDF path")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *coverPath == "" || *pdfPath == "" {
		return errors.New("both -cover and -pdf are required")
	}

	cover, closeCover, err := upload.OpenFile(*coverPath)
	if err != nil {
		return err
	}
	defer closeCover.Close()
	document, closeDoc, err := upload.OpenFile(*pdfPath)
	if err != nil {
		return err
	}
	defer closeDoc.Close()

	res := a.client.PublishMagazine(ctx, a.uploader, form, cover, document, func(field string, pct int) {
		a.progress(field)(pct)
	})
	if !res.Success {
		for field, msg := range res.FieldErrors {
			fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
		}
		return a.fail(res.Message)
	}
	fmt.Fprintln(a.out, "Magazine created successfully!")
	fmt.Fprintln(a.out, "  image:", res.Cover.ResultURL)
	fmt.Fprintln(a.out, "  file: ", res.Document.ResultURL)
	return nil
}

func (a *App) categories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	var res adminclient.Result[[]string]
	switch args[0] {
	case "list":
		res = a.client.FetchCategories(ctx)
	case "add":
		name, err := a.oneArg("categories add", args[1:])
		if err != nil {
			return err
		}
		res = a.client.AddCategory(ctx, name)
	case "rename":
		if len(args) != 3 {
			return a.subUsage("categories rename <old> <new>")
		}
		res = a.client.RenameCategory(ctx, args[1], args[2])
	case "delete":
		fs := a.flags("categories delete")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		rest, err := parse(fs, args[1:])
		if err != nil {
			return err
		}
		if len(rest) != 1 {
			return a.subUsage("categories delete [-yes] <name>")
		}
		if !*yes && !a.confirm(fmt.Sprintf("Delete category %q?", rest[0])) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		res = a.client.DeleteCategory(ctx, rest[0])
	default:
		return a.subUsage("categories list|add|rename|delete")
	}

	if !res.Success {
		return a.fail(res.Message)
	}
	if res.Message != "" {
		fmt.Fprintln(a.out, res.Message)
	}
	for _, c := range res.Data {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := a.flags("upload")
	kindName := fs.String("kind", "image", "image or document")
	folder := fs.String("folder", "", "bucket folder; defaults by kind")
	rest, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return a.subUsage("upload -kind image|document [-folder F] <path>")
	}

	kind := upload.KindImage
	if strings.EqualFold(*kindName, upload.KindDocument.String()) {
		kind = upload.KindDocument
	}

	f, closer, err := upload.OpenFile(rest[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	job := a.uploader.Run(ctx, "file", kind, *folder, f, a.progress(f.Name))
	if job.Err != nil {
		a.log.Warn("upload failed", slog.String("file", f.Name), sl.Err(job.Err))
		return job.Err
	}
	fmt.Fprintln(a.out, job.ResultURL)
	return nil
}

// progress печатает прогресс загрузки поля или файла.
func (a *App) progress(field string) upload.ProgressFunc {
	return func(pct int) {
		fmt.Fprintf(a.out, "  %s: %d%%\n", field, pct)
	}
}

func (a *App) oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", a.subUsage(cmd + " <arg>")
	}
	return args[0], nil
}

func (a *App) subUsage(line string) error {
	fmt.Fprintln(a.out, "Usage: magazine-admin", line)
	return errUsage
}
