// Package loader drives a host page's lazy-loading feed to convergence
// before extraction. It scrolls, waits for transient loading indicators to
// clear, activates load-more controls, and reports progress, terminating
// only when no scroll distance remains and no control is visible.
package loader

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/tmcewan/feedexport/post"
)

// ScrollMetrics is a snapshot of the page's scroll geometry.
type ScrollMetrics struct {
	Top            int
	ViewportHeight int
	DocumentHeight int
}

// Page is the host-page surface the scroller drives. Implementations wrap
// whatever renders the feed; errors from these methods are treated as
// host-environment failures and propagate out of LoadAll.
type Page interface {
	// PostCount reports the number of post containers currently rendered.
	PostCount() (int, error)
	// Metrics returns the current scroll geometry.
	Metrics() (ScrollMetrics, error)
	// ScrollTo moves the viewport top to the given offset.
	ScrollTo(offset int) error
	// LoadingIndicatorCount counts transient loading placeholders.
	LoadingIndicatorCount() (int, error)
	// HasLoadMore reports whether a visible, enabled load-more control
	// exists.
	HasLoadMore() (bool, error)
	// ActivateLoadMore activates such a control if present and reports
	// whether one was activated.
	ActivateLoadMore() (bool, error)
}

// State is the scroller's lifecycle state.
type State int32

// Scroller states.
const (
	Idle State = iota
	Scrolling
	Completed
	// Aborted means the safety bound fired; the run still reports
	// completion with whatever was loaded.
	Aborted
)

// ProgressFunc receives progress updates during loading. May be nil.
type ProgressFunc func(post.ScrollProgress)

// Scroller runs the load-everything phase. One Scroller drives one page;
// LoadAll is not safe for concurrent calls.
type Scroller struct {
	page    Page
	limiter *rate.Limiter

	// MaxIterations bounds the scroll loop against a feed that never
	// signals completion.
	MaxIterations int
	// BottomSlack is how close to the document end (in pixels) counts as
	// "cannot scroll further".
	BottomSlack int

	// Wait tuning; tests shrink these.
	ScrollSettle  time.Duration
	IndicatorPoll time.Duration
	IndicatorWait time.Duration
	MaxIndicator  int
	ClickSettle   time.Duration

	state   atomic.Int32
	stopped atomic.Bool
}

// NewScroller creates a Scroller with production timing defaults.
func NewScroller(page Page) *Scroller {
	return &Scroller{
		page:          page,
		limiter:       rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		MaxIterations: 500,
		BottomSlack:   100,
		ScrollSettle:  200 * time.Millisecond,
		IndicatorPoll: 300 * time.Millisecond,
		IndicatorWait: 600 * time.Millisecond,
		MaxIndicator:  6,
		ClickSettle:   time.Second,
	}
}

// State returns the scroller's current lifecycle state.
func (s *Scroller) State() State {
	return State(s.state.Load())
}

// Stop requests a cooperative stop. The scroller checks it between
// iterations; an in-flight wait completes first.
func (s *Scroller) Stop() {
	s.stopped.Store(true)
}

// LoadAll scrolls the feed to convergence and returns the final post count.
// Reaching the safety bound is not an error: the loader reports completion
// with partial results. Host-page failures propagate.
func (s *Scroller) LoadAll(ctx context.Context, onProgress ProgressFunc) (int, error) {
	s.state.Store(int32(Scrolling))
	s.stopped.Store(false)

	report := func(phase post.Phase, count int, message string) {
		if onProgress != nil {
			onProgress(post.ScrollProgress{Phase: phase, PostsFound: count, Message: message})
		}
	}

	count, err := s.page.PostCount()
	if err != nil {
		s.state.Store(int32(Aborted))
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	report(post.PhaseScrolling, count, "Starting to load posts...")

	attempt := 0
	for {
		if s.stopped.Load() || ctx.Err() != nil {
			break
		}
		attempt++

		if err := s.limiter.Wait(ctx); err != nil {
			// Context cancelled mid-wait; treat as a stop.
			break
		}

		if err := s.scrollDown(); err != nil {
			s.state.Store(int32(Aborted))
			return count, fmt.Errorf("scroll failed: %w", err)
		}

		if err := s.waitForIndicators(ctx); err != nil {
			s.state.Store(int32(Aborted))
			return count, fmt.Errorf("failed to poll loading indicators: %w", err)
		}

		clicked, err := s.page.ActivateLoadMore()
		if err != nil {
			s.state.Store(int32(Aborted))
			return count, fmt.Errorf("failed to activate load-more control: %w", err)
		}
		if clicked {
			sleep(ctx, s.ClickSettle)
		}

		count, err = s.page.PostCount()
		if err != nil {
			s.state.Store(int32(Aborted))
			return count, fmt.Errorf("failed to count posts: %w", err)
		}
		report(post.PhaseScrolling, count, fmt.Sprintf("Loaded %d posts (attempt %d)...", count, attempt))

		// End of feed only when both hold at once: either alone can be
		// transient (a button may appear only after hitting the bottom).
		canScroll, err := s.canScrollFurther()
		if err != nil {
			s.state.Store(int32(Aborted))
			return count, fmt.Errorf("failed to read scroll metrics: %w", err)
		}
		hasMore, err := s.page.HasLoadMore()
		if err != nil {
			s.state.Store(int32(Aborted))
			return count, fmt.Errorf("failed to query load-more control: %w", err)
		}
		if !canScroll && !hasMore {
			s.state.Store(int32(Completed))
			break
		}

		if attempt >= s.MaxIterations {
			s.state.Store(int32(Aborted))
			break
		}
	}

	if s.State() == Scrolling {
		s.state.Store(int32(Completed))
	}

	report(post.PhaseCompleted, count,
		fmt.Sprintf("Finished loading all posts. Found %d posts total.", count))
	return count, nil
}

// scrollDown advances the viewport by one viewport height, or to the
// document end if that is closer.
func (s *Scroller) scrollDown() error {
	m, err := s.page.Metrics()
	if err != nil {
		return err
	}

	target := m.Top + m.ViewportHeight
	if target > m.DocumentHeight {
		target = m.DocumentHeight
	}
	if err := s.page.ScrollTo(target); err != nil {
		return err
	}

	time.Sleep(s.ScrollSettle)
	return nil
}

func (s *Scroller) canScrollFurther() (bool, error) {
	m, err := s.page.Metrics()
	if err != nil {
		return false, err
	}
	distanceFromBottom := m.DocumentHeight - (m.Top + m.ViewportHeight)
	return distanceFromBottom > s.BottomSlack, nil
}

// waitForIndicators polls until no loading indicator remains, bounded by
// MaxIndicator attempts.
func (s *Scroller) waitForIndicators(ctx context.Context) error {
	sleep(ctx, s.IndicatorWait)
	for attempt := 0; attempt < s.MaxIndicator; attempt++ {
		n, err := s.page.LoadingIndicatorCount()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		sleep(ctx, s.IndicatorPoll)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
