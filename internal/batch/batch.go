// Package batch evaluates many independent expressions in parallel.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"bigcalc/bignum"
	"bigcalc/internal/cache"
	"bigcalc/internal/expr"
	"bigcalc/internal/observ"
	"bigcalc/internal/trace"
)

// Item is one expression and the input line it came from.
type Item struct {
	Line int
	Expr string
}

// ReadItems reads one expression per line. Blank lines and lines starting
// with '#' are skipped; a trailing "# comment" is stripped.
func ReadItems(r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		items = append(items, Item{Line: line, Expr: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return items, nil
}

// Request describes one batch run.
type Request struct {
	Items     []Item
	Vars      map[string]bignum.BigInt // seeds every item's environment
	MaxDigits int                      // see expr.Env.MaxDigits
	Jobs      int                      // 0 = GOMAXPROCS
	Cache     *cache.DiskCache         // nil disables caching
	Sink      ProgressSink
	Timer     *observ.Timer
}

// Result is the outcome of one item. Err is set for evaluation failures,
// which do not stop the batch.
type Result struct {
	Item
	Value   bignum.BigInt
	Err     error
	Cached  bool
	Elapsed time.Duration
}

// Run evaluates every item in its own environment and returns results in
// input order. It fails only when ctx is cancelled.
func Run(ctx context.Context, req Request) ([]Result, error) {
	if len(req.Items) == 0 {
		return nil, nil
	}
	sink := req.Sink
	if sink == nil {
		sink = nopSink{}
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if req.Timer != nil {
		defer req.Timer.Track("batch")(strconv.Itoa(len(req.Items)) + " expressions")
	}

	span, ctx := trace.Start(ctx, trace.ScopeBatch, "batch")
	span.WithExtra("items", strconv.Itoa(len(req.Items))).WithExtra("jobs", strconv.Itoa(jobs))

	for i, it := range req.Items {
		sink.OnEvent(Event{Index: i, Line: it.Line, Expr: it.Expr, Status: StatusQueued})
	}

	results := make([]Result, len(req.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Items)))

	for i, it := range req.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sink.OnEvent(Event{Index: i, Line: it.Line, Expr: it.Expr, Status: StatusWorking})
			res := evalItem(gctx, req, it)
			// Cancellation aborts the batch instead of being reported per item.
			if gctx.Err() != nil {
				return gctx.Err()
			}
			// Index i is unique per goroutine.
			results[i] = res

			evt := Event{Index: i, Line: it.Line, Expr: it.Expr, Status: StatusDone, Cached: res.Cached, Elapsed: res.Elapsed}
			if res.Err != nil {
				evt.Status = StatusError
				evt.Err = res.Err
			}
			sink.OnEvent(evt)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.WithExtra("failed", strconv.Itoa(Summarize(results).Failed)).End("")
	return results, nil
}

func evalItem(ctx context.Context, req Request, it Item) (res Result) {
	start := time.Now()
	res.Item = it

	span, ctx := trace.Start(ctx, trace.ScopeJob, "job")
	span.WithExtra("line", strconv.Itoa(it.Line))
	defer func() {
		res.Elapsed = time.Since(start)
		switch {
		case res.Err != nil:
			span.End(res.Err.Error())
		case res.Cached:
			span.WithExtra("cached", "true").End("")
		default:
			span.WithExtra("digits", strconv.Itoa(res.Value.NumDigits())).End("")
		}
	}()

	normalized := expr.Normalize(it.Expr)
	key := cache.KeyFor(normalized, req.Vars, req.MaxDigits)

	var hit cache.Payload
	if ok, err := req.Cache.Get(key, &hit); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeJob, "cache", err.Error(), trace.CurrentSpan(ctx).SpanID)
	} else if ok {
		res.Value = hit.Result
		res.Cached = true
		return res
	}

	env := expr.NewEnv()
	env.MaxDigits = req.MaxDigits
	for name, v := range req.Vars {
		env.Set(name, v)
	}
	v, err := expr.Eval(ctx, env, normalized)
	if err != nil {
		res.Err = err
		return res
	}
	res.Value = v

	if err := req.Cache.Put(key, &cache.Payload{Expr: normalized, Result: v, Digits: v.NumDigits()}); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeJob, "cache", err.Error(), trace.CurrentSpan(ctx).SpanID)
	}
	return res
}

// Stats counts batch outcomes.
type Stats struct {
	Total  int
	Failed int
	Cached int
}

// Summarize counts the outcomes in results.
func Summarize(results []Result) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		if r.Cached {
			s.Cached++
		}
	}
	return s
}
