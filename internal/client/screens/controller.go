package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/client/listview"
	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/client/services"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/logging"
)

var (
	ErrNotReady     = errors.New("screen is not ready")
	ErrNotListed    = errors.New("candidate is not listed")
	ErrNoDetailOpen = errors.New("no detail view open")
)

// Deps are the collaborators shared by all screens.
type Deps struct {
	Session       Session
	Directory     services.DirectorySource
	Relationships services.RelationshipStore
	Unlocks       services.UnlockCoordinator
	Photos        PhotoResolver
	Logger        logging.Logger
}

// Controller is the state machine of one list screen:
//
//	Loading -> Ready | LoggedOut
//	Ready -> DetailView -> Ready
//
// Loads run under a context owned by the controller. Unmount, or the end of
// the context given to Mount, cancels in-flight loads and the pending
// logged-out return.
type Controller struct {
	screen    Screen
	deps      Deps
	backDelay time.Duration
	onBack    func()

	mu        sync.Mutex
	status    Status
	view      *listview.State
	directory []models.Candidate
	byID      map[string]models.Candidate
	rels      models.RelationshipSets
	unlocked  models.IDSet
	photos    map[string]string
	term      string
	filters   listview.Filters
	detailID  string
	// page shown when the detail view was opened
	detailPage int

	ctx    context.Context
	cancel context.CancelFunc
	bg     sync.WaitGroup
}

// NewController builds the controller of one screen. onBack is called
// backDelay after a mount finds no signed-in user.
func NewController(screen Screen, deps Deps, pageSize int, backDelay time.Duration, onBack func()) *Controller {
	return &Controller{
		screen:    screen,
		deps:      deps,
		backDelay: backDelay,
		onBack:    onBack,
		view:      listview.New(pageSize),
		rels:      models.NewRelationshipSets(),
		unlocked:  models.IDSet{},
		photos:    map[string]string{},
		byID:      map[string]models.Candidate{},
	}
}

func (c *Controller) Screen() Screen { return c.screen }

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// scope derives a context that ends with ctx or with the controller.
func (c *Controller) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	c.mu.Lock()
	owner := c.ctx
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	if owner == nil {
		return ctx, cancel
	}
	stop := context.AfterFunc(owner, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Mount loads the screen. Without a signed-in user it switches to
// LoggedOut, schedules onBack and returns common.ErrAuthRequired.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	owner := c.ctx
	c.status = StatusLoading
	c.detailID = ""
	c.mu.Unlock()

	userID := c.deps.Session.CurrentUser()
	if userID == "" {
		c.setStatus(StatusLoggedOut)
		c.scheduleBack(owner)
		return common.ErrAuthRequired
	}

	ctx, cancel := c.scope(ctx)
	defer cancel()

	snap, err := c.fetch(ctx, userID, true)
	if err != nil {
		c.setStatus(StatusIdle)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(snap)
	c.rebuild()
	c.status = StatusReady
	return nil
}

// Unmount cancels in-flight loads and the pending logged-out return.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.status = StatusIdle
	c.mu.Unlock()
	c.bg.Wait()
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

func (c *Controller) scheduleBack(owner context.Context) {
	if c.onBack == nil {
		return
	}
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		t := time.NewTimer(c.backDelay)
		defer t.Stop()
		select {
		case <-owner.Done():
		case <-t.C:
			c.onBack()
		}
	}()
}

type snapshot struct {
	directory []models.Candidate
	photos    map[string]string
	rels      models.RelationshipSets
	unlocked  models.IDSet
}

// fetch reads the relationship and unlock state and, when withDirectory is
// set, the approved directory and its photos.
func (c *Controller) fetch(ctx context.Context, userID string, withDirectory bool) (*snapshot, error) {
	snap := &snapshot{}

	if withDirectory {
		all, err := c.deps.Directory.ListCandidates(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list candidates: %w", common.ErrPersistence, err)
		}
		approved, err := c.deps.Directory.ApprovedIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: approved ids: %w", common.ErrPersistence, err)
		}
		ok := models.NewIDSet(approved...)
		for _, cand := range all {
			if ok.Has(cand.ID) {
				snap.directory = append(snap.directory, cand)
			}
		}
	}

	rels, err := c.deps.Relationships.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap.rels = rels

	unlocked, err := c.deps.Unlocks.UnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap.unlocked = unlocked

	if withDirectory && c.deps.Photos != nil {
		ids := make([]string, len(snap.directory))
		for i, cand := range snap.directory {
			ids[i] = cand.ID
		}
		photos, err := c.deps.Photos.URLs(ctx, ids)
		if err != nil {
			c.deps.Logger.Warn(ctx, "photos unavailable", "screen", string(c.screen), "error", err)
		}
		snap.photos = photos
	}
	return snap, ctx.Err()
}

func (c *Controller) apply(s *snapshot) {
	if s.directory != nil {
		c.directory = s.directory
		c.byID = make(map[string]models.Candidate, len(s.directory))
		for _, cand := range s.directory {
			c.byID[cand.ID] = cand
		}
	}
	if s.photos != nil {
		c.photos = s.photos
	}
	c.rels = s.rels
	c.unlocked = s.unlocked
}

// rebuild recomputes the list from the screen's current source. It resets
// the page to 1.
func (c *Controller) rebuild() {
	source := make([]models.Candidate, 0, len(c.directory))
	for _, cand := range c.directory {
		if !c.screen.includes(cand.ID, c.rels, c.unlocked) {
			continue
		}
		cand.PhotoURL = c.photos[cand.ID]
		source = append(source, cand)
	}
	c.view.Rebuild(source, c.term, c.filters)
}

// isUnlocked answers from the coordinator's merged set only. The unlocked
// flag on the relationship row is a mirror that never expires, so it is not
// consulted.
func (c *Controller) isUnlocked(id string) bool {
	return c.unlocked.Has(id)
}

func (c *Controller) row(cand models.Candidate, selected models.IDSet) Row {
	r := Row{
		Saved:      c.rels.SavedIDs.Has(cand.ID),
		Favourite:  c.rels.FavouriteIDs.Has(cand.ID),
		Downloaded: c.rels.DownloadedIDs.Has(cand.ID),
		Unlocked:   c.isUnlocked(cand.ID),
		Selected:   selected.Has(cand.ID),
	}
	if r.Unlocked {
		r.Candidate = cand
	} else {
		r.Candidate = cand.Masked()
	}
	return r
}

// Rows returns the rows of the current page.
func (c *Controller) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := models.NewIDSet(c.view.Selected()...)
	items := c.view.PageItems()
	out := make([]Row, len(items))
	for i, cand := range items {
		out[i] = c.row(cand, selected)
	}
	return out
}

// Page returns the current page and the page count.
func (c *Controller) Page() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Page(), c.view.PageCount()
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Len()
}

func (c *Controller) SetPage(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.SetPage(n)
}

func (c *Controller) NextPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.SetPage(c.view.Page() + 1)
}

func (c *Controller) PrevPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.SetPage(c.view.Page() - 1)
}

func (c *Controller) PageOf(candidateID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.PageOf(candidateID)
}

// Search sets the search term and rebuilds.
func (c *Controller) Search(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.term = term
	c.rebuild()
}

// SetFilters replaces the active filters and rebuilds.
func (c *Controller) SetFilters(filters listview.Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = filters
	c.rebuild()
}

func (c *Controller) SetSort(order listview.SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetSort(order)
	c.rebuild()
}

func (c *Controller) ToggleSelected(candidateID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.ToggleSelected(candidateID)
}

// SelectPage adds every row of the current page to the selection and
// returns the selection size.
func (c *Controller) SelectPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SelectPage()
	return len(c.view.Selected())
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ClearSelection()
}

func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Selected()
}

// ApplyLocal applies a flag change to the in-memory state and rebuilds,
// before the backend confirms it.
func (c *Controller) ApplyLocal(candidateID string, patch models.FlagsPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := func(s models.IDSet, v *bool) {
		if v == nil {
			return
		}
		if *v {
			s.Add(candidateID)
		} else {
			s.Remove(candidateID)
		}
	}
	set(c.rels.SavedIDs, patch.Saved)
	set(c.rels.FavouriteIDs, patch.Favourite)
	set(c.rels.DownloadedIDs, patch.Downloaded)
	set(c.rels.UnlockedIDs, patch.Unlocked)
	if patch.Unlocked != nil && *patch.Unlocked {
		c.unlocked.Add(candidateID)
	}
	c.rebuild()
}

// Reconcile refetches relationship and unlock state and rebuilds.
func (c *Controller) Reconcile(ctx context.Context) error {
	return c.reconcile(ctx, false)
}

// reconcile also refetches the directory when withDirectory is set, which
// picks up contact fields the server reveals after an unlock.
func (c *Controller) reconcile(ctx context.Context, withDirectory bool) error {
	userID := c.deps.Session.CurrentUser()
	if userID == "" {
		return common.ErrAuthRequired
	}

	ctx, cancel := c.scope(ctx)
	defer cancel()

	snap, err := c.fetch(ctx, userID, withDirectory)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(snap)
	c.rebuild()
	return nil
}

func (c *Controller) flags(candidateID string) models.PreferenceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.PreferenceRecord{
		CandidateID: candidateID,
		Saved:       c.rels.SavedIDs.Has(candidateID),
		Favourite:   c.rels.FavouriteIDs.Has(candidateID),
		Downloaded:  c.rels.DownloadedIDs.Has(candidateID),
	}
}

// mutate runs ApplyLocal, the store write and Reconcile in that order. The
// refetch also runs when the write fails, so the list shows stored truth.
func (c *Controller) mutate(ctx context.Context, candidateID string, patch models.FlagsPatch) error {
	userID := c.deps.Session.CurrentUser()
	if userID == "" {
		return common.ErrAuthRequired
	}

	c.ApplyLocal(candidateID, patch)
	writeErr := c.deps.Relationships.Upsert(ctx, userID, candidateID, patch)
	if err := c.Reconcile(ctx); err != nil {
		c.deps.Logger.Warn(ctx, "reconcile failed", "screen", string(c.screen), "error", err)
		if writeErr == nil {
			return err
		}
	}
	return writeErr
}

// ToggleSave flips the saved flag and returns the new value.
func (c *Controller) ToggleSave(ctx context.Context, candidateID string) (bool, error) {
	v := !c.flags(candidateID).Saved
	return v, c.mutate(ctx, candidateID, models.FlagsPatch{Saved: models.Flag(v)})
}

// ToggleFavourite flips the favourite flag and returns the new value.
func (c *Controller) ToggleFavourite(ctx context.Context, candidateID string) (bool, error) {
	v := !c.flags(candidateID).Favourite
	return v, c.mutate(ctx, candidateID, models.FlagsPatch{Favourite: models.Flag(v)})
}

func (c *Controller) MarkDownloaded(ctx context.Context, candidateID string) error {
	return c.mutate(ctx, candidateID, models.FlagsPatch{Downloaded: models.Flag(true)})
}

// Unlock spends cost coins on candidateID through the unlock coordinator,
// then reconciles.
func (c *Controller) Unlock(ctx context.Context, candidateID string, cost int64) models.UnlockResult {
	userID := c.deps.Session.CurrentUser()
	if userID == "" {
		return models.UnlockResult{Status: models.UnlockError, Message: "sign in to unlock candidates", Err: common.ErrAuthRequired}
	}

	res := c.deps.Unlocks.Unlock(ctx, userID, candidateID, cost)
	if res.Status != models.UnlockError {
		c.ApplyLocal(candidateID, models.FlagsPatch{Unlocked: models.Flag(true)})
	}
	if err := c.reconcile(ctx, res.Status == models.UnlockSuccess); err != nil {
		c.deps.Logger.Warn(ctx, "reconcile failed", "screen", string(c.screen), "error", err)
	}
	return res
}

// OpenDetail switches from Ready to DetailView for a listed candidate.
func (c *Controller) OpenDetail(candidateID string) (Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return Row{}, ErrNotReady
	}
	if _, ok := c.view.PageOf(candidateID); !ok {
		return Row{}, ErrNotListed
	}
	c.detailID = candidateID
	c.detailPage = c.view.Page()
	c.status = StatusDetailView

	cand := c.byID[candidateID]
	cand.PhotoURL = c.photos[candidateID]
	return c.row(cand, models.NewIDSet(c.view.Selected()...)), nil
}

// Detail returns the row of the open detail view with current flags.
func (c *Controller) Detail() (Row, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusDetailView {
		return Row{}, false
	}
	cand, ok := c.byID[c.detailID]
	if !ok {
		return Row{}, false
	}
	cand.PhotoURL = c.photos[cand.ID]
	return c.row(cand, models.IDSet{}), true
}

// CloseDetail returns to Ready. It refetches, rebuilds and moves to the
// page of the candidate that was open. When that candidate is no longer
// listed, the page shown before the detail view is kept and scroll is false.
func (c *Controller) CloseDetail(ctx context.Context) (scroll bool, err error) {
	c.mu.Lock()
	if c.status != StatusDetailView {
		c.mu.Unlock()
		return false, ErrNoDetailOpen
	}
	id, prev := c.detailID, c.detailPage
	c.mu.Unlock()

	err = c.Reconcile(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusReady
	c.detailID = ""
	if c.view.RestoreAfterDetailView(id) {
		return true, err
	}
	c.view.SetPage(prev)
	return false, err
}
