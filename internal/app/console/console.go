// Package console собирает консоль администратора: хранилище сессии,
// клиент прокси, оркестратор загрузки и команды командной строки.
package console

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/magazine-admin/internal/config"
	adminclient "github.com/magabrotheeeer/magazine-admin/internal/console"
	"github.com/magabrotheeeer/magazine-admin/internal/session"
	"github.com/magabrotheeeer/magazine-admin/internal/upload"
)

// Коды завершения.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var errUsage = errors.New("usage")

// App консоль администратора.
type App struct {
	log      *slog.Logger
	cfg      *config.Console
	client   *adminclient.Client
	uploader *upload.Orchestrator
	out      io.Writer
	in       *bufio.Reader
}

// OpenStore открывает файловое хранилище сессии по пути из конфига
// или по пути по умолчанию.
func OpenStore(cfg *config.Console) (session.Store, error) {
	const op = "app.console.OpenStore"
	path := cfg.SessionPath
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		path = p
	}
	store, err := session.NewFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return store, nil
}

// New создаёт консоль. storage используется стратегией signed для PUT в хранилище.
func New(log *slog.Logger, cfg *config.Console, store session.Store, storage *http.Client, out io.Writer, in io.Reader) *App {
	client := adminclient.New(log, store, adminclient.Options{
		ProxyURL:          cfg.ProxyURL,
		LoginURL:          cfg.LoginURL,
		Timeout:           cfg.Timeout,
		TokenScanFallback: cfg.TokenScanFallback,
	})

	var u upload.Uploader
	switch cfg.UploadStrategy {
	case "signed":
		u = upload.NewSignedURLUploader(client.Proxy(), storage, cfg.PublicBaseURL)
	default:
		u = upload.NewProxyUploader(client.Proxy(), storage)
	}

	return &App{
		log:      log,
		cfg:      cfg,
		client:   client,
		uploader: upload.NewOrchestrator(u),
		out:      out,
		in:       bufio.NewReader(in),
	}
}

// Run выполняет команду args и возвращает код завершения.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return ExitUsage
	}

	var err error
	switch args[0] {
	case "login":
		err = a.login(ctx, args[1:])
	case "logout":
		err = a.logout()
	case "whoami":
		err = a.whoami()
	case "users":
		err = a.users(ctx, args[1:])
	case "magazines":
		err = a.magazines(ctx, args[1:])
	case "categories":
		err = a.categories(ctx, args[1:])
	case "upload":
		err = a.upload(ctx, args[1:])
	case "help", "-h", "--help":
		a.usage()
		return ExitOK
	default:
		fmt.Fprintf(a.out, "unknown command %q\n\n", args[0])
		a.usage()
		return ExitUsage
	}

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return ExitUsage
	default:
		fmt.Fprintln(a.out, "Error:", err)
		return ExitFailure
	}
}

func (a *App) usage() {
	fmt.Fprint(a.out, `Usage: magazine-admin <command> [flags]

Commands:
  login [-email E] [-password P]        sign in as administrator
  logout                                 clear the local session
  whoami                                 show the signed-in administrator
  users list [-q Q] [-page N]            list users
  users show <uid>                       show user details
  users delete [-yes] <uid>              delete a user
  magazines list [-q Q] [-page N]        list magazines
  magazines stats                        magazine counts by kind
  magazines create -name N -type free|pro -cover F -pdf F [-kind K] [-category C] [-description D]
  categories list|add <name>|rename <old> <new>|delete [-yes] <name>
  upload -kind image|document [-folder F] <path>
`)
}

// fail печатает сообщение результата и, если сессия отвергнута удалённым API,
// очищает её.
func (a *App) fail(msg string) error {
	if msg == adminclient.MsgAuthFailed || msg == adminclient.MsgNoToken {
		a.client.Logout()
	}
	return errors.New(msg)
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) confirm(question string) bool {
	answer, err := a.prompt(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parse разбирает флаги, допуская их после позиционных аргументов.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
