package kafkaview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/louisbranch/kafkaview/internal/platform/config"
	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/platform/i18n"
	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/notify"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/router"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
	"github.com/louisbranch/kafkaview/internal/services/console/session/sqlite"
)

// errLoginRequired is returned when the guard sends a command to the login route.
var errLoginRequired = errors.New("login required, run: kafkaview login")

// reportedError marks a failure the user has already been shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// runtime is one command's backend client with its persistent session.
type runtime struct {
	client *api.Client
	store  *sqlite.Store
	nav    *router.Router
	loc    *i18n.Labeler
	opts   *options
}

func (o *options) open(ctx context.Context) (*runtime, error) {
	statePath, err := config.ExpandHome(o.state)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.Open(ctx, statePath)
	if err != nil {
		return nil, fmt.Errorf("open session state: %w", err)
	}
	jar, err := session.NewJar(ctx, o.server, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	nav := router.New(store)
	nav.OnNavigate = func(requested, final string) {
		if requested != final || final == routepath.Login {
			fmt.Fprintf(o.streams.Err, "→ %s\n", final)
		}
	}
	loc := i18n.NewLabeler(o.locale)
	client, err := api.New(api.Options{
		BaseURL:   o.server,
		Timeout:   o.timeout,
		Session:   store,
		Navigator: nav,
		Notifier:  notify.NewWriter(o.streams.Err, !o.noColor),
		Logger:    log.New(o.streams.Err, "", log.LstdFlags),
		Jar:       jar,
		Debug:     o.debug,
		Locale:    loc.Locale(),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &runtime{client: client, store: store, nav: nav, loc: loc, opts: o}, nil
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		log.Printf("close session state: %v", err)
	}
}

// guard runs the route guard for path and navigates to the login route when
// the session flag is missing.
func (rt *runtime) guard(path string) error {
	if decision := router.Guard(path, rt.store); !decision.Allowed {
		rt.nav.Navigate(path)
		return &reportedError{err: errLoginRequired}
	}
	return nil
}

// withSession opens the runtime, guards path and runs fn.
func (o *options) withSession(cmd *cobra.Command, path string, fn func(ctx context.Context, rt *runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.guard(path); err != nil {
		fmt.Fprintln(o.streams.Err, errLoginRequired.Error())
		return err
	}
	return reported(fn(ctx, rt))
}

// reported marks API failures the client has already notified or redirected.
func reported(err error) error {
	if err == nil {
		return nil
	}
	switch platformerrors.CodeOf(err) {
	case platformerrors.CodeAPIEnvelope,
		platformerrors.CodeAPITransport,
		platformerrors.CodeAPIDecode,
		platformerrors.CodeAPIAuthRequired,
		platformerrors.CodeAPIUnauthorized:
		return &reportedError{err: err}
	default:
		return err
	}
}

func (rt *runtime) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(rt.opts.streams.Out)
	if len(header) > 0 {
		table.SetHeader(header)
	}
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func (rt *runtime) printf(format string, args ...any) {
	fmt.Fprintf(rt.opts.streams.Out, format, args...)
}

func (rt *runtime) pageFooter(total int64, page, pageSize int) {
	rt.printf("total %s, page %d, page size %d\n", rt.loc.Number(total), page, pageSize)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid cluster id %q", value)
	}
	return id, nil
}

func formatOptionalInt64(value *int64) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatInt(*value, 10)
}
