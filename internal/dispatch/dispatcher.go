package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"littlex/internal/core"
	"littlex/internal/feed"
)

var commandsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "littlex_commands_processed_total",
	Help: "The total number of dispatched commands",
}, []string{"command", "status"})

const profileDefaultUsername = "guest"

// Dispatcher interprets commands and invokes exactly one store operation
// each, normalizing the outcome into a Report. It is the only way posts and
// comments are created or mutated.
type Dispatcher struct {
	Logger *slog.Logger
	Store  *feed.Store
}

func (d *Dispatcher) Init(_ context.Context) error {
	d.Logger = d.Logger.With("component", "dispatch.Dispatcher")
	return nil
}

// NewDispatcher wires a dispatcher by hand, outside the service lifecycle.
func NewDispatcher(logger *slog.Logger, store *feed.Store) *Dispatcher {
	d := &Dispatcher{Logger: logger, Store: store}
	_ = d.Init(context.Background())
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) core.Report {
	report := d.dispatch(ctx, cmd)

	commandsProcessed.WithLabelValues(cmd.Name, strconv.Itoa(report.Status)).Inc()
	if report.Error != "" {
		d.Logger.Debug("command failed", "command", cmd.Name, "status", report.Status, "error", report.Error)
	}

	return report
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd Command) core.Report {
	switch cmd.Name {
	case CmdCreateTweet:
		post := d.Store.Insert(ctx, cmd.Content, cmd.Username, cmd.Media)
		return core.Success(core.Context(post))

	case CmdLoadFeed:
		items := lo.Map(d.Store.List(ctx), func(p *core.Post, _ int) core.ReportItem {
			return core.Context(p)
		})
		return core.Success(items...)

	case CmdGetProfile:
		username := cmd.Username
		if username == "" {
			username = profileDefaultUsername
		}
		return core.Success(core.Context(core.NewProfile(username)))

	case CmdLikeTweet:
		post, err := d.Store.AddLike(ctx, cmd.TweetID, cmd.Username)
		if err != nil {
			return core.FailureFromError(err)
		}
		return core.Success(core.Context(post))

	case CmdRemoveLike:
		post, err := d.Store.RemoveLike(ctx, cmd.TweetID, cmd.Username)
		if err != nil {
			return core.FailureFromError(err)
		}
		return core.Success(core.Context(post))

	case CmdCommentTweet:
		post, err := d.Store.AddComment(ctx, cmd.TweetID, cmd.Username, cmd.Content)
		if err != nil {
			return core.FailureFromError(err)
		}
		return core.Success(core.Context(post))

	case CmdRemoveComment:
		post, removed, err := d.Store.RemoveComment(ctx, cmd.TweetID, cmd.CommentID)
		if err != nil {
			return core.FailureFromError(err)
		}
		return core.Success(core.ReportItem{Context: post, Removed: removed})

	default:
		return core.Failure(http.StatusBadRequest, fmt.Sprintf("Unknown command: %s", cmd.Name))
	}
}
