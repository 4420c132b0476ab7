package helpers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/andrescamacho/travian-go/internal/domain/resources"
)

// MockDriver is a test double for the Driver interface. Selector outcomes
// are scripted per selector; anything unscripted succeeds, so happy-path
// tests only script the selectors they care about.
type MockDriver struct {
	mu sync.RWMutex

	// Scripted selector behavior
	failingClicks   map[string]bool // selector -> Click returns false
	missingWaits    map[string]bool // selector -> WaitForSelector returns false
	hiddenSelectors map[string]bool // selector -> IsVisible returns false
	visibleOnly     map[string]bool // when non-empty, only these are visible
	textContent     map[string]string
	textErrors      map[string]bool
	classContent    map[string]string
	pageSources     map[string]string
	htmlByPage      map[string]string

	// Error injection for navigation and compound actions
	navigateErr error
	transferErr error
	trainErr    error

	// Call tracking
	NavigatedPaths   []string
	VillageVisits    []int
	Clicks           []string
	ClickAllCalls    []string
	ClickNthCalls    []string
	SelectedOptions  map[string]string
	Transferred      []resources.Resources
	TrainCalls       []string
	SleptSeconds     []float64
	currentURL       string
	clickAllCounts   map[string]int
	stopped          bool
}

// NewMockDriver creates a mock driver where every interaction succeeds.
func NewMockDriver() *MockDriver {
	return &MockDriver{
		failingClicks:   make(map[string]bool),
		missingWaits:    make(map[string]bool),
		hiddenSelectors: make(map[string]bool),
		visibleOnly:     make(map[string]bool),
		textContent:     make(map[string]string),
		textErrors:      make(map[string]bool),
		classContent:    make(map[string]string),
		pageSources:     make(map[string]string),
		htmlByPage:      make(map[string]string),
		SelectedOptions: make(map[string]string),
		clickAllCounts:  make(map[string]int),
	}
}

// Scripting helpers

func (m *MockDriver) FailClick(selector string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failingClicks[selector] = true
}

func (m *MockDriver) FailWait(selector string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missingWaits[selector] = true
}

func (m *MockDriver) Hide(selector string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hiddenSelectors[selector] = true
}

// VisibleOnly switches visibility to an allow-list: only the given
// selectors report visible.
func (m *MockDriver) VisibleOnly(selectors ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range selectors {
		m.visibleOnly[s] = true
	}
}

func (m *MockDriver) SetTextContent(selector, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textContent[selector] = text
}

func (m *MockDriver) FailTextContent(selector string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textErrors[selector] = true
}

func (m *MockDriver) SetClasses(selector, classes string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classContent[selector] = classes
}

func (m *MockDriver) SetPageSource(iframeSelector, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSources[iframeSelector] = html
}

func (m *MockDriver) SetHTML(pageName, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.htmlByPage[pageName] = html
}

func (m *MockDriver) SetNavigateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navigateErr = err
}

func (m *MockDriver) SetTransferError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transferErr = err
}

func (m *MockDriver) SetTrainError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainErr = err
}

// ClickCount returns how many times the selector was clicked.
func (m *MockDriver) ClickCount(selector string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, s := range m.Clicks {
		if s == selector {
			count++
		}
	}
	return count
}

// ClickedPrefix reports whether any recorded click starts with prefix.
func (m *MockDriver) ClickedPrefix(prefix string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.Clicks {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// Driver implementation

func (m *MockDriver) Navigate(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.navigateErr != nil {
		return m.navigateErr
	}
	m.NavigatedPaths = append(m.NavigatedPaths, path)
	m.currentURL = path
	return nil
}

func (m *MockDriver) NavigateToVillage(_ context.Context, villageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.navigateErr != nil {
		return m.navigateErr
	}
	m.VillageVisits = append(m.VillageVisits, villageID)
	m.currentURL = fmt.Sprintf("/dorf1.php?newdid=%d", villageID)
	return nil
}

func (m *MockDriver) CurrentURL(_ context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentURL
}

func (m *MockDriver) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

func (m *MockDriver) Stopped() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopped
}

func (m *MockDriver) GetHTML(_ context.Context, pageName string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	html, ok := m.htmlByPage[pageName]
	if !ok {
		return "", fmt.Errorf("no html scripted for page %q", pageName)
	}
	return html, nil
}

func (m *MockDriver) GetVillageInnerHTML(_ context.Context, villageID int) (string, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d1, ok1 := m.htmlByPage[fmt.Sprintf("dorf1:%d", villageID)]
	d2, ok2 := m.htmlByPage[fmt.Sprintf("dorf2:%d", villageID)]
	if !ok1 || !ok2 {
		return "", "", fmt.Errorf("no village html scripted for %d", villageID)
	}
	return d1, d2, nil
}

func (m *MockDriver) GetPageSource(_ context.Context, iframeSelector string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.pageSources[iframeSelector]
	if !ok {
		return "", fmt.Errorf("no page source scripted for %q", iframeSelector)
	}
	return src, nil
}

func (m *MockDriver) Click(_ context.Context, selector string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failingClicks[selector] {
		return false
	}
	m.Clicks = append(m.Clicks, selector)
	return true
}

func (m *MockDriver) ClickFirst(ctx context.Context, selectors []string) bool {
	for _, s := range selectors {
		m.mu.RLock()
		failing := m.failingClicks[s]
		m.mu.RUnlock()
		if failing {
			continue
		}
		return m.Click(ctx, s)
	}
	return false
}

func (m *MockDriver) ClickAll(_ context.Context, selector string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClickAllCalls = append(m.ClickAllCalls, selector)
	return m.clickAllCounts[selector]
}

// SetClickAllCount scripts how many elements ClickAll reports for a selector.
func (m *MockDriver) SetClickAllCount(selector string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clickAllCounts[selector] = n
}

func (m *MockDriver) ClickNth(_ context.Context, selector string, index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failingClicks[selector] {
		return false
	}
	m.ClickNthCalls = append(m.ClickNthCalls, fmt.Sprintf("%s#%d", selector, index))
	return true
}

func (m *MockDriver) PressKey(_ context.Context, _ string) error { return nil }

func (m *MockDriver) SelectOption(_ context.Context, selector, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SelectedOptions[selector] = value
	return nil
}

func (m *MockDriver) WaitForLoadState(_ context.Context, _ int) {}

func (m *MockDriver) WaitForSelector(_ context.Context, selector string, _ int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.missingWaits[selector]
}

func (m *MockDriver) WaitForSelectorAndClick(ctx context.Context, selector string, timeoutMs int) bool {
	if !m.WaitForSelector(ctx, selector, timeoutMs) {
		return false
	}
	return m.Click(ctx, selector)
}

func (m *MockDriver) Sleep(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SleptSeconds = append(m.SleptSeconds, seconds)
}

func (m *MockDriver) IsVisible(_ context.Context, selector string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.visibleOnly) > 0 {
		return m.visibleOnly[selector]
	}
	return !m.hiddenSelectors[selector]
}

func (m *MockDriver) GetTextContent(_ context.Context, selector string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.textErrors[selector] {
		return "", fmt.Errorf("no element matching %q", selector)
	}
	text, ok := m.textContent[selector]
	if !ok {
		return "", fmt.Errorf("no text scripted for %q", selector)
	}
	return text, nil
}

func (m *MockDriver) CatchFullClassesBySelector(_ context.Context, selector string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	classes, ok := m.classContent[selector]
	if !ok {
		return "", fmt.Errorf("no classes scripted for %q", selector)
	}
	return classes, nil
}

func (m *MockDriver) TransferResourcesFromHero(_ context.Context, r resources.Resources) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transferErr != nil {
		return m.transferErr
	}
	m.Transferred = append(m.Transferred, r)
	return nil
}

func (m *MockDriver) SendMerchant(_ context.Context, originID, marketID, targetX, targetY int, r resources.Resources) error {
	return nil
}

func (m *MockDriver) TrainTroops(_ context.Context, villageID, buildingID, troopTypeID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trainErr != nil {
		return m.trainErr
	}
	m.TrainCalls = append(m.TrainCalls,
		fmt.Sprintf("village=%d building=%d troop=%d qty=%d", villageID, buildingID, troopTypeID, quantity))
	return nil
}
