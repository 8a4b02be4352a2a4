package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxbuddy/boxbuddy/internal/config"
	"github.com/boxbuddy/boxbuddy/internal/dispatch"
	"github.com/boxbuddy/boxbuddy/internal/history"
	"github.com/boxbuddy/boxbuddy/internal/model"
	"github.com/boxbuddy/boxbuddy/internal/platform"
	"github.com/boxbuddy/boxbuddy/internal/platform/platformtest"
)

const listOutput = "ID           | NAME     | STATUS        | IMAGE\n" +
	"1a2b3c4d5e6f | fedora   | Up 2 hours    | registry.fedoraproject.org/fedora-toolbox:39\n" +
	"2b3c4d5e6f7a | arch     | Exited (0)    | quay.io/toolbx/arch-toolbox:latest\n"

// listRunner serves listOutput and then whatever next holds
type listRunner struct {
	*platformtest.Runner
	mu   sync.Mutex
	next string
}

func newListRunner(output string) *listRunner {
	r := &listRunner{Runner: platformtest.New(), next: output}
	r.OutputFunc = func(name string, args []string) ([]byte, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		return []byte(r.next), nil
	}
	return r
}

func (r *listRunner) setOutput(output string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next = output
}

func newTestUI(t *testing.T, runner platform.Runner) (*RootUI, fyne.Window) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	app.Preferences().SetBool(config.KeyBackgroundActions, false)
	app.Preferences().SetString(config.KeyTerminal, "xterm")

	window := app.NewWindow("test")
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	service := dispatch.NewService(platform.NewDistrobox("", runner))
	ui := NewRootUI(window, app, service, service)
	ui.toaster.autoHide = time.Hour
	return ui, window
}

// findButton walks the rendered tree for a button with the given text
func findButton(obj fyne.CanvasObject, text string) *widget.Button {
	switch o := obj.(type) {
	case *widget.Button:
		if o.Text == text {
			return o
		}
	case *fyne.Container:
		for _, child := range o.Objects {
			if b := findButton(child, text); b != nil {
				return b
			}
		}
	case fyne.Widget:
		for _, child := range test.WidgetRenderer(o).Objects() {
			if b := findButton(child, text); b != nil {
				return b
			}
		}
	}
	return nil
}

func tapOverlayButton(t *testing.T, window fyne.Window, text string) {
	t.Helper()
	for _, overlay := range window.Canvas().Overlays().List() {
		if b := findButton(overlay, text); b != nil {
			test.Tap(b)
			return
		}
	}
	t.Fatalf("no %q button in any overlay", text)
}

func TestRootUI_NotInstalled(t *testing.T) {
	runner := platformtest.New()
	runner.Missing[platform.DistroboxCommand] = true

	ui, _ := newTestUI(t, runner)

	assert.True(t, ui.notFound)
	assert.Empty(t, ui.Boxes())
	assert.Nil(t, ui.tabs)
	assert.True(t, ui.createBtn.Disabled())
	assert.Empty(t, runner.CallsOf(platformtest.KindOutput), "list must not run without the tool")
}

func TestRootUI_TabsPerBox(t *testing.T) {
	ui, _ := newTestUI(t, newListRunner(listOutput))

	require.Len(t, ui.Boxes(), 2)
	require.NotNil(t, ui.tabs)
	require.Len(t, ui.tabs.Items, 2)
	assert.Equal(t, "fedora", ui.tabs.Items[0].Text)
	assert.Equal(t, "arch", ui.tabs.Items[1].Text)

	bt, ok := ui.BoxTab("arch")
	require.True(t, ok)
	assert.Equal(t, "arch", bt.Box().Distro)
	for _, action := range rowActions {
		assert.NotNil(t, bt.Button(action), action.String())
	}
	assert.Equal(t, widget.DangerImportance, bt.Button(model.ActionDelete).Importance)
}

func TestRootUI_EmptyRegistry(t *testing.T) {
	ui, _ := newTestUI(t, newListRunner("ID | NAME | STATUS | IMAGE\n"))

	assert.False(t, ui.notFound)
	assert.Empty(t, ui.Boxes())
	assert.Nil(t, ui.tabs)
	assert.False(t, ui.createBtn.Disabled())
}

func TestRootUI_RefreshKeepsSelection(t *testing.T) {
	runner := newListRunner(listOutput)
	ui, _ := newTestUI(t, runner)

	ui.tabs.SelectIndex(1)
	ui.Refresh()

	require.NotNil(t, ui.tabs.Selected())
	assert.Equal(t, "arch", ui.tabs.Selected().Text)
	assert.Len(t, runner.CallsOf(platformtest.KindOutput), 2)
}

func TestRootUI_DeleteConfirmed(t *testing.T) {
	runner := newListRunner(listOutput)
	ui, window := newTestUI(t, runner)

	bt, ok := ui.BoxTab("arch")
	require.True(t, ok)

	runner.setOutput("ID | NAME | STATUS | IMAGE\n1a2b | fedora | Up | registry.fedoraproject.org/fedora-toolbox:39\n")
	test.Tap(bt.Button(model.ActionDelete))
	assert.Empty(t, runner.CallsOf(platformtest.KindRun), "delete must wait for confirmation")

	tapOverlayButton(t, window, "Delete")

	calls := runner.CallsOf(platformtest.KindRun)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"rm", "--force", "arch"}, calls[0].Args)
	assert.Equal(t, "Box Deleted!", ui.toaster.Last())

	require.Len(t, ui.Boxes(), 1)
	assert.Equal(t, "fedora", ui.Boxes()[0].Name)
}

func TestRootUI_DeleteCancelled(t *testing.T) {
	runner := newListRunner(listOutput)
	ui, window := newTestUI(t, runner)

	bt, ok := ui.BoxTab("fedora")
	require.True(t, ok)

	test.Tap(bt.Button(model.ActionDelete))
	tapOverlayButton(t, window, "Cancel")

	assert.Empty(t, runner.CallsOf(platformtest.KindRun))
	assert.Len(t, ui.Boxes(), 2)
}

func TestRootUI_UpgradeFailureShowsToast(t *testing.T) {
	runner := newListRunner(listOutput)
	runner.RunFunc = func(name string, args []string) error {
		return platformtest.ExitError(name, args, 1, "Error: upgrade failed for fedora")
	}
	ui, _ := newTestUI(t, runner)

	bt, ok := ui.BoxTab("fedora")
	require.True(t, ok)

	assert.NotPanics(t, func() {
		test.Tap(bt.Button(model.ActionUpgrade))
	})
	assert.True(t, strings.Contains(ui.toaster.Last(), "Error: upgrade failed for fedora"))
	assert.Len(t, ui.Boxes(), 2)
}

func TestRootUI_OpenTerminal(t *testing.T) {
	runner := newListRunner(listOutput)
	ui, _ := newTestUI(t, runner)

	bt, ok := ui.BoxTab("fedora")
	require.True(t, ok)
	test.Tap(bt.Button(model.ActionOpenTerminal))

	calls := runner.CallsOf(platformtest.KindStart)
	require.Len(t, calls, 1)
	assert.Equal(t, "xterm", calls[0].Name)
	assert.Equal(t, []string{"-e", "distrobox", "enter", "fedora"}, calls[0].Args)
	assert.Equal(t, "Terminal opened", ui.toaster.Last())
}

func TestRootUI_CreateRejectsOptionLikeName(t *testing.T) {
	runner := newListRunner(listOutput)
	ui, _ := newTestUI(t, runner)

	ui.controller.Handle(model.ActionCreate, dispatch.RowContext{Box: model.Box{Name: "-h"}})

	assert.Empty(t, runner.CallsOf(platformtest.KindStart))
	assert.Contains(t, ui.toaster.Last(), dispatch.ErrInvalidBoxName.Error())
}

// uiQueue plays the UI goroutine: results delivered by workers wait until
// the test runs them
type uiQueue chan func()

func (q uiQueue) deliver(f func()) {
	q <- f
}

func (q uiQueue) next(t *testing.T) {
	t.Helper()
	select {
	case f := <-q:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("nothing was delivered to the UI goroutine")
	}
}

func TestRootUI_BackgroundActions(t *testing.T) {
	release := make(chan struct{})
	runner := newListRunner(listOutput)
	runner.RunFunc = func(string, []string) error {
		<-release
		return nil
	}

	app := test.NewApp()
	t.Cleanup(app.Quit)
	app.Preferences().SetBool(config.KeyBackgroundActions, true)
	app.Preferences().SetString(config.KeyTerminal, "xterm")
	window := app.NewWindow("test")
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	queue := make(uiQueue, 4)
	service := dispatch.NewService(platform.NewDistrobox("", runner))
	ui := newRootUI(window, app, service, service, queue.deliver)
	ui.toaster.autoHide = time.Hour

	assert.Empty(t, ui.Boxes(), "list result waits for the UI goroutine")
	queue.next(t)
	require.Len(t, ui.Boxes(), 2)

	bt, ok := ui.BoxTab("fedora")
	require.True(t, ok)
	test.Tap(bt.Button(model.ActionUpgrade))
	assert.Equal(t, "fedora"+MiddleDotSeparator+"Upgrading...", ui.toaster.Last())

	// switching to synchronous mode while the upgrade runs
	app.Preferences().SetBool(config.KeyBackgroundActions, false)
	ui.applySettings()
	close(release)

	queue.next(t)
	assert.Equal(t, "Box Upgraded!", ui.toaster.Last())

	runner.setOutput("ID | NAME | STATUS | IMAGE\n1a2b | fedora | Up | registry.fedoraproject.org/fedora-toolbox:39\n")
	ui.Refresh()
	assert.Len(t, ui.Boxes(), 1, "synchronous refresh applies immediately")
	assert.Empty(t, queue)
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, window := newTestUI(t, newListRunner(listOutput))

	ui.onLanguageChange("ru")
	assert.Equal(t, "ru", ui.settings.GetLanguage())
	assert.Equal(t, "BoxBuddy", window.Title())
	assert.Len(t, ui.tabs.Items, 2)
}

func TestDistroBadge(t *testing.T) {
	for _, d := range platform.KnownDistros {
		_, ok := distroBadges[d.ID]
		assert.True(t, ok, "missing badge for %s", d.ID)
	}

	res := DistroBadge("fedora")
	assert.Equal(t, "distro-fedora.svg", res.Name())
	assert.Same(t, res, DistroBadge("fedora"))
	assert.Contains(t, string(res.Content()), "#3C6EB4")

	assert.Equal(t, "distro-unknown.svg", DistroBadge("plan9").Name())
}

func TestDistroDisplayName(t *testing.T) {
	assert.Equal(t, "Fedora", DistroDisplayName("fedora"))
	assert.Equal(t, "Unknown", DistroDisplayName("unknown"))
	assert.Equal(t, "", DistroDisplayName(""))
}

func TestValidateBoxName(t *testing.T) {
	assert.NoError(t, validateBoxName("dev-box"))
	assert.ErrorIs(t, validateBoxName(""), dispatch.ErrEmptyBoxName)
	assert.ErrorIs(t, validateBoxName("-h"), dispatch.ErrInvalidBoxName)
	assert.ErrorIs(t, validateBoxName("--all"), dispatch.ErrInvalidBoxName)
	assert.Error(t, validateBoxName("two words"))
}

func TestFormatHistoryEntry(t *testing.T) {
	started := time.Now().Add(-2 * time.Hour)
	e := history.Entry{
		Action:     model.ActionUpgrade,
		Box:        "fedora",
		Detail:     "no network",
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
	}

	line := formatHistoryEntry(e)
	assert.Contains(t, line, "2 hours ago")
	assert.Contains(t, line, "upgrade"+MiddleDotSeparator+"fedora"+MiddleDotSeparator+"1.5s")
	assert.True(t, strings.HasSuffix(line, "✗ no network"))

	e.Success = true
	assert.True(t, strings.HasSuffix(formatHistoryEntry(e), "1.5s"+MiddleDotSeparator+"✓"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250400*time.Microsecond))
	assert.Equal(t, "2m3.4s", formatDuration(2*time.Minute+3420*time.Millisecond))
}

func TestLocalization(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "Really Delete?", l.GetText(KeyReallyDelete))

	l.SetLanguage("ru")
	assert.Equal(t, "ru", l.GetCurrentLanguage())
	assert.Equal(t, "Удалить", l.GetText(KeyDelete))

	l.SetLanguage("xx")
	assert.Equal(t, "ru", l.GetCurrentLanguage())

	assert.Equal(t, "missing_key", l.GetText("missing_key"))

	// Every English key has a Russian translation
	for key := range l.texts["en"] {
		_, ok := l.texts["ru"][key]
		assert.True(t, ok, "missing ru text for %s", key)
	}
}
