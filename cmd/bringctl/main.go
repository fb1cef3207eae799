package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/listkeeper/bring"
	"github.com/listkeeper/bring/internal/config"
)

const usage = `usage: bringctl [flags] <command> [args]

commands:
  lists                          show all shopping lists
  items <list>                   show open and recent items of a list
  add <list> <item> [spec]       put an item on a list
  complete <list> <item>         move an item to the recent section
  remove <list> <item>           take an item off a list
  notify <list> <type> [item]    notify list members (going-shopping,
                                 changed-list, shopping-done, urgent)
  whoami                         show the logged-in account

flags:
`

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "override bringctl config path (optional)")
	verbose := flag.Bool("verbose", false, "log requests and responses")
	timeout := flag.Duration("timeout", 30*time.Second, "per-run request deadline")
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	// A .env next to the binary is a convenience for development setups;
	// absence is fine.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := runCommand(ctx, log, *configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "bringctl: %v\n", err)
		return 1
	}
	return 0
}

func runCommand(ctx context.Context, log *logrus.Logger, configPath string, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []bring.Option{
		bring.WithLogger(log),
		bring.WithLocaleDir(cfg.CacheLocaleDir()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, bring.WithBaseURL(cfg.BaseURL))
	}
	if cfg.LocalesURL != "" {
		opts = append(opts, bring.WithLocalesURL(cfg.LocalesURL))
	}
	client, err := bring.NewClient(&http.Client{}, cfg.Email, cfg.Password, opts...)
	if err != nil {
		return err
	}
	if _, err := client.Login(ctx); err != nil {
		return err
	}

	command, args := args[0], args[1:]
	switch command {
	case "lists":
		return showLists(ctx, client)
	case "items":
		if len(args) != 1 {
			return fmt.Errorf("usage: bringctl items <list>")
		}
		return showItems(ctx, client, args[0])
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: bringctl add <list> <item> [spec]")
		}
		spec := ""
		if len(args) == 3 {
			spec = args[2]
		}
		return withList(ctx, client, args[0], func(listUUID string) error {
			return client.SaveItem(ctx, listUUID, args[1], spec, uuid.NewString())
		})
	case "complete":
		if len(args) != 2 {
			return fmt.Errorf("usage: bringctl complete <list> <item>")
		}
		return withList(ctx, client, args[0], func(listUUID string) error {
			return client.CompleteItem(ctx, listUUID, args[1], "", "")
		})
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: bringctl remove <list> <item>")
		}
		return withList(ctx, client, args[0], func(listUUID string) error {
			return client.RemoveItem(ctx, listUUID, args[1], "")
		})
	case "notify":
		if len(args) < 2 {
			return fmt.Errorf("usage: bringctl notify <list> <type> [item]")
		}
		return withList(ctx, client, args[0], func(listUUID string) error {
			return sendNotification(ctx, client, listUUID, args[1:])
		})
	case "whoami":
		return showAccount(ctx, client)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func showLists(ctx context.Context, client *bring.Client) error {
	lists, err := client.LoadLists(ctx)
	if err != nil {
		return err
	}
	for _, list := range lists.Lists {
		fmt.Printf("%s  %s\n", list.ListUUID, list.Name)
	}
	return nil
}

func showItems(ctx context.Context, client *bring.Client, name string) error {
	return withList(ctx, client, name, func(listUUID string) error {
		items, err := client.GetList(ctx, listUUID)
		if err != nil {
			return err
		}
		for _, item := range items.Items.Purchase {
			fmt.Printf("open    %-30s %s\n", item.ItemID, item.Specification)
		}
		for _, item := range items.Items.Recently {
			fmt.Printf("recent  %-30s %s\n", item.ItemID, item.Specification)
		}
		return nil
	})
}

func showAccount(ctx context.Context, client *bring.Client) error {
	account, err := client.GetUserAccount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", account.Name, account.Email)
	fmt.Printf("uuid:   %s\n", account.UserUUID)
	fmt.Printf("locale: %s-%s\n", account.UserLocale.Language, account.UserLocale.Country)
	return nil
}

func sendNotification(ctx context.Context, client *bring.Client, listUUID string, args []string) error {
	var opts bring.NotifyOptions
	var typ bring.NotificationType
	switch args[0] {
	case "going-shopping":
		typ = bring.NotificationGoingShopping
	case "changed-list":
		typ = bring.NotificationChangedList
	case "shopping-done":
		typ = bring.NotificationShoppingDone
	case "urgent":
		if len(args) != 2 {
			return fmt.Errorf("usage: bringctl notify <list> urgent <item>")
		}
		typ = bring.NotificationUrgentMessage
		opts.ItemName = args[1]
	default:
		return fmt.Errorf("unknown notification type %q", args[0])
	}
	return client.Notify(ctx, listUUID, typ, opts)
}

// withList resolves a list by name or UUID and runs fn against it.
func withList(ctx context.Context, client *bring.Client, name string, fn func(listUUID string) error) error {
	lists, err := client.LoadLists(ctx)
	if err != nil {
		return err
	}
	for _, list := range lists.Lists {
		if list.ListUUID == name || strings.EqualFold(list.Name, name) {
			return fn(list.ListUUID)
		}
	}
	return fmt.Errorf("no list named %q", name)
}
