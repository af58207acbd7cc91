package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jekabolt/store-console/app"
	"github.com/jekabolt/store-console/config"
	"github.com/jekabolt/store-console/internal/catalog"
	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/jekabolt/store-console/log"
	"github.com/spf13/cobra"
)

func setDefaultLogger(l *slog.Logger) {
	slog.SetDefault(l)
}

// openApp builds the components for a one-shot command. Logs go to stderr
// so stdout carries only the command output.
func openApp(cmd *cobra.Command) (*app.App, *config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load a config %v", err.Error())
	}
	setDefaultLogger(log.New(cfg.Logger, cmd.ErrOrStderr()))

	a, err := app.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create the application %v", err.Error())
	}
	return a, cfg, nil
}

func printNotifications(cmd *cobra.Command, a *app.App) {
	for _, n := range a.Notifications.Drain() {
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", n.Level, n.Message)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// promptConfirmer asks on the terminal and accepts only y or yes.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func confirmer(cmd *cobra.Command, yes bool) dependency.Confirmer {
	if yes {
		return catalog.Confirmed(true)
	}
	return promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
}

func categoryName(categories []entity.Category, id int) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return strconv.Itoa(id)
}
