package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/samber/lo"

	"github.com/umputun/rsscollect/pkg/domain"
	"github.com/umputun/rsscollect/pkg/scheduler"
	"github.com/umputun/rsscollect/pkg/service"
)

// collect runs collection of all due feeds, or all active feeds if forced
func (a *app) collect(ctx context.Context, cmd CollectCmd) error {
	started := time.Now()
	var res domain.BatchResult
	if cmd.Force {
		feeds, err := a.repos.Feed.GetFeeds(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to get active feeds: %w", err)
		}
		res = a.collector.CollectFeeds(ctx, feeds, true)
	} else {
		var err error
		sched := scheduler.NewScheduler(scheduler.Params{Collector: a.collector})
		if res, err = sched.RunOnce(ctx); err != nil {
			return fmt.Errorf("failed to collect feeds: %w", err)
		}
	}

	a.printBatch(res, time.Since(started))
	if res.HasFailures() {
		return errFailures
	}
	return nil
}

// collectFeed collects a single feed. A feed which is not due is reported and left alone unless forced.
func (a *app) collectFeed(ctx context.Context, cmd CollectFeedCmd) error {
	f, err := a.repos.Feed.GetFeed(ctx, cmd.FeedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("feed %d not found", cmd.FeedID)
		}
		return fmt.Errorf("failed to get feed %d: %w", cmd.FeedID, err)
	}

	var res domain.FeedResult
	if cmd.Force {
		res = a.collector.ForceCollectFeed(ctx, f)
	} else {
		res = a.collector.CollectFeed(ctx, f)
	}

	if res.Skipped {
		next := "now"
		if t := f.NextCollectTime(); t != nil {
			next = t.Local().Format(time.DateTime)
		}
		_, _ = fmt.Fprintf(a.out, "feed %d (%s) is not due for collection (status %s, next collection %s), use --force to collect anyway\n",
			f.ID, f.Name, f.Status, next)
		return nil
	}

	a.printBatch(domain.BatchResult{SuccessCount: btoi(res.Success), FailedCount: btoi(!res.Success),
		Details: []domain.FeedResult{res}}, 0)
	if !res.Success {
		return errFailures
	}
	return nil
}

// stats prints aggregated statistics, failing feeds and feeds due for collection
func (a *app) stats(ctx context.Context) error {
	st, err := a.collector.GetCollectStatistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}
	feeds, err := a.repos.Feed.GetFeeds(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to get feeds: %w", err)
	}
	due, err := a.collector.DueFeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get due feeds: %w", err)
	}

	stored, err := a.repos.Item.CountItems(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}

	_, _ = fmt.Fprintf(a.out, "total feeds:  %d\nactive feeds: %d\nerror feeds:  %d\ntotal items:  %d\nstored items: %d\n",
		st.TotalFeeds, st.ActiveFeeds, st.ErrorFeeds, st.TotalItems, stored)

	errFeeds := lo.Filter(feeds, func(f *domain.Feed, _ int) bool { return f.Status == domain.FeedStatusError })
	if len(errFeeds) > 0 {
		_, _ = fmt.Fprintf(a.out, "\n%s\n", color.RedString("feeds with errors:"))
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tLAST COLLECTED\tERROR")
		for _, f := range errFeeds {
			fs := a.collector.GetFeedStatistics(f)
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", fs.FeedID, fs.FeedName, fmtTime(fs.LastCollectTime), fs.LastError)
		}
		_ = tw.Flush()
	}

	_, _ = fmt.Fprintf(a.out, "\nfeeds due for collection: %d\n", len(due))
	if len(due) > 0 {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tINTERVAL\tLAST COLLECTED")
		for _, f := range due {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%dm\t%s\n", f.ID, f.Name, f.CollectIntervalMinutes, fmtTime(f.LastCollectTime))
		}
		_ = tw.Flush()
	}
	return nil
}

// addFeed registers a new feed
func (a *app) addFeed(ctx context.Context, cmd AddFeedCmd) error {
	f, err := a.feeds.CreateFeed(ctx, service.FeedRequest{
		Name:                   cmd.Name,
		URL:                    cmd.URL,
		Description:            cmd.Description,
		Category:               cmd.Category,
		CollectIntervalMinutes: cmd.Interval,
	})
	if err != nil {
		return fmt.Errorf("failed to add feed: %w", err)
	}
	_, _ = fmt.Fprintf(a.out, "feed %d (%s) added, collected every %d minutes\n", f.ID, f.Name, f.CollectIntervalMinutes)
	return nil
}

// recent prints items published within the last days, newest first
func (a *app) recent(ctx context.Context, cmd RecentCmd) error {
	if cmd.Days < 1 || cmd.Limit < 1 {
		return errors.New("days and limit must be positive")
	}
	items, err := a.repos.Item.GetRecentItems(ctx, cmd.Days, cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to get recent items: %w", err)
	}
	if len(items) == 0 {
		_, _ = fmt.Fprintf(a.out, "no items published in the last %d days\n", cmd.Days)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PUBLISHED\tFEED\tTITLE\tLINK")
	for _, it := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", fmtTime(it.PublishTime), it.FeedID, it.Title, it.Link)
	}
	return tw.Flush()
}

// printBatch prints per-feed results and the summary line
func (a *app) printBatch(res domain.BatchResult, elapsed time.Duration) {
	if len(res.Details) == 0 {
		_, _ = fmt.Fprintln(a.out, "no feeds due for collection")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tFEED\tSTATUS\tITEMS\tERROR")
	for _, r := range res.Details {
		status := color.GreenString(r.Status())
		if !r.Success {
			status = color.RedString(r.Status())
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", r.FeedID, r.FeedName, status, r.ItemsSaved, r.Error)
	}
	_ = tw.Flush()

	summary := fmt.Sprintf("collected %d feeds: %d succeeded, %d failed", res.Total(), res.SuccessCount, res.FailedCount)
	if elapsed > 0 {
		summary += fmt.Sprintf(" in %v", elapsed.Round(time.Millisecond))
	}
	_, _ = fmt.Fprintln(a.out, summary)
	lgr.Printf("[DEBUG] %s", summary)
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
