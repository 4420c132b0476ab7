package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/travian-go/internal/domain/ports"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
)

const (
	defaultTimeoutMs = 3000
	// pageSettleDelay gives the game's own scripts a moment after load.
	pageSettleDelay = 300 * time.Millisecond
)

// Options configure a browser session.
type Options struct {
	ServerURL string
	Login     string
	Password  string
	Headless  bool
}

// ChromeDriver drives a headless Chrome session against the game server.
// All primitives are best-effort: timeouts and missing elements degrade to
// false/zero returns, and only a dead browser context surfaces as a
// shared.DriverFatalError.
type ChromeDriver struct {
	opts Options

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	// limiter keeps page interactions at a human-ish pace; the game bans
	// rapid-fire automation.
	limiter *rate.Limiter
}

var _ ports.Driver = (*ChromeDriver)(nil)

// NewChromeDriver launches a browser and logs into the game server.
func NewChromeDriver(ctx context.Context, opts Options) (*ChromeDriver, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1366, 900),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	d := &ChromeDriver{
		opts:          opts,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		limiter:       rate.NewLimiter(rate.Limit(2), 2),
	}

	if err := d.login(); err != nil {
		d.Stop()
		return nil, fmt.Errorf("logging into %s: %w", opts.ServerURL, err)
	}
	return d, nil
}

func (d *ChromeDriver) login() error {
	return chromedp.Run(d.browserCtx,
		chromedp.Navigate(d.opts.ServerURL),
		chromedp.WaitVisible(`input[name="name"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="name"]`, d.opts.Login, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="password"]`, d.opts.Password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// run executes actions with a per-call timeout against the browser context.
func (d *ChromeDriver) run(timeoutMs int, actions ...chromedp.Action) error {
	if timeoutMs <= 0 {
		timeoutMs = defaultTimeoutMs
	}
	d.limiter.Wait(d.browserCtx)

	tctx, cancel := context.WithTimeout(d.browserCtx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()
	return d.classify(chromedp.Run(tctx, actions...))
}

// classify separates expected timeouts from a dead browser session. A
// per-call deadline is an ordinary miss; a dead browser context means the
// whole session is gone and the executor must build a new driver.
func (d *ChromeDriver) classify(err error) error {
	if err == nil || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if d.browserCtx.Err() != nil {
		return shared.NewDriverFatalError(err)
	}
	return err
}

func (d *ChromeDriver) url(path string) string {
	return d.opts.ServerURL + path
}

// Navigate loads a server-relative path.
func (d *ChromeDriver) Navigate(_ context.Context, path string) error {
	err := d.run(10000,
		chromedp.Navigate(d.url(path)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(pageSettleDelay),
	)
	return err
}

func (d *ChromeDriver) NavigateToVillage(ctx context.Context, villageID int) error {
	return d.Navigate(ctx, fmt.Sprintf("/dorf1.php?newdid=%d&", villageID))
}

func (d *ChromeDriver) CurrentURL(_ context.Context) string {
	var url string
	if err := d.run(defaultTimeoutMs, chromedp.Location(&url)); err != nil {
		return ""
	}
	return url
}

// Stop tears the browser session down.
func (d *ChromeDriver) Stop() error {
	d.browserCancel()
	d.allocCancel()
	return nil
}

var pageToPath = map[string]string{
	"dorf1":           "/dorf1.php",
	"dorf2":           "/dorf2.php",
	"hero/attributes": "/hero/attributes",
	"hero/inventory":  "/hero/inventory",
	"adventures":      "/hero/adventures",
}

func (d *ChromeDriver) GetHTML(ctx context.Context, pageName string) (string, error) {
	path, ok := pageToPath[pageName]
	if !ok {
		path = "/" + pageName
	}
	if err := d.Navigate(ctx, path); err != nil {
		return "", err
	}

	var html string
	if err := d.run(defaultTimeoutMs, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (d *ChromeDriver) GetVillageInnerHTML(ctx context.Context, villageID int) (string, string, error) {
	if err := d.NavigateToVillage(ctx, villageID); err != nil {
		return "", "", err
	}
	var dorf1 string
	if err := d.run(defaultTimeoutMs, chromedp.OuterHTML("html", &dorf1, chromedp.ByQuery)); err != nil {
		return "", "", err
	}

	if err := d.Navigate(ctx, fmt.Sprintf("/dorf2.php?newdid=%d&", villageID)); err != nil {
		return "", "", err
	}
	var dorf2 string
	if err := d.run(defaultTimeoutMs, chromedp.OuterHTML("html", &dorf2, chromedp.ByQuery)); err != nil {
		return "", "", err
	}
	return dorf1, dorf2, nil
}

// GetPageSource returns the inner document of an iframe, falling back to
// the iframe element itself when the frame is cross-origin.
func (d *ChromeDriver) GetPageSource(_ context.Context, iframeSelector string) (string, error) {
	script := fmt.Sprintf(`(() => {
		const frame = document.querySelector(%q);
		if (!frame) { return ""; }
		try { return frame.contentDocument.documentElement.outerHTML; }
		catch (e) { return frame.outerHTML; }
	})()`, iframeSelector)

	var html string
	if err := d.run(defaultTimeoutMs, chromedp.Evaluate(script, &html)); err != nil {
		return "", err
	}
	if html == "" {
		return "", fmt.Errorf("no iframe matching %q", iframeSelector)
	}
	return html, nil
}

func (d *ChromeDriver) Click(_ context.Context, selector string) bool {
	err := d.run(defaultTimeoutMs,
		chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible),
	)
	return err == nil
}

func (d *ChromeDriver) ClickFirst(ctx context.Context, selectors []string) bool {
	for _, selector := range selectors {
		if d.IsVisible(ctx, selector) && d.Click(ctx, selector) {
			return true
		}
	}
	return false
}

func (d *ChromeDriver) ClickAll(_ context.Context, selector string) int {
	var nodes []*cdp.Node
	if err := d.run(defaultTimeoutMs,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	); err != nil {
		return 0
	}

	clicked := 0
	for _, node := range nodes {
		if err := d.run(defaultTimeoutMs, chromedp.MouseClickNode(node)); err == nil {
			clicked++
		}
	}
	return clicked
}

func (d *ChromeDriver) ClickNth(_ context.Context, selector string, index int) bool {
	var nodes []*cdp.Node
	if err := d.run(defaultTimeoutMs,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	); err != nil {
		return false
	}
	if index < 0 || index >= len(nodes) {
		return false
	}
	return d.run(defaultTimeoutMs, chromedp.MouseClickNode(nodes[index])) == nil
}

func (d *ChromeDriver) PressKey(_ context.Context, key string) error {
	return d.run(defaultTimeoutMs, chromedp.KeyEvent(key))
}

func (d *ChromeDriver) SelectOption(_ context.Context, selector, value string) error {
	return d.run(defaultTimeoutMs, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

func (d *ChromeDriver) WaitForLoadState(_ context.Context, timeoutMs int) {
	d.run(timeoutMs,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(pageSettleDelay),
	)
}

func (d *ChromeDriver) WaitForSelector(_ context.Context, selector string, timeoutMs int) bool {
	return d.run(timeoutMs, chromedp.WaitVisible(selector, chromedp.ByQuery)) == nil
}

func (d *ChromeDriver) WaitForSelectorAndClick(ctx context.Context, selector string, timeoutMs int) bool {
	if !d.WaitForSelector(ctx, selector, timeoutMs) {
		return false
	}
	return d.Click(ctx, selector)
}

func (d *ChromeDriver) Sleep(seconds float64) {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}

func (d *ChromeDriver) IsVisible(_ context.Context, selector string) bool {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		return !!el && el.offsetParent !== null;
	})()`, selector)

	var visible bool
	if err := d.run(defaultTimeoutMs, chromedp.Evaluate(script, &visible)); err != nil {
		return false
	}
	return visible
}

func (d *ChromeDriver) GetTextContent(_ context.Context, selector string) (string, error) {
	var text string
	if err := d.run(defaultTimeoutMs, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return text, nil
}

func (d *ChromeDriver) CatchFullClassesBySelector(_ context.Context, selector string) (string, error) {
	var classes string
	var ok bool
	if err := d.run(defaultTimeoutMs,
		chromedp.AttributeValue(selector, "class", &classes, &ok, chromedp.ByQuery),
	); err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no element matching %q", selector)
	}
	return classes, nil
}

// TransferResourcesFromHero moves the given amounts from the hero inventory
// into the currently selected village.
func (d *ChromeDriver) TransferResourcesFromHero(ctx context.Context, r resources.Resources) error {
	if r.IsZero() {
		return nil
	}
	if err := d.Navigate(ctx, "/hero/inventory"); err != nil {
		return err
	}

	classByKind := map[resources.Kind]string{
		resources.Lumber: "lumber",
		resources.Clay:   "clay",
		resources.Iron:   "iron",
		resources.Crop:   "crop",
	}
	for _, kind := range resources.AllKinds {
		amount := r.Get(kind)
		if amount <= 0 {
			continue
		}
		itemSelector := fmt.Sprintf("#heroItems .resource.%s", classByKind[kind])
		if err := d.run(defaultTimeoutMs,
			chromedp.Click(itemSelector, chromedp.ByQuery, chromedp.NodeVisible),
			chromedp.WaitVisible("#itemTransferAmount", chromedp.ByQuery),
			chromedp.SetValue("#itemTransferAmount", fmt.Sprintf("%d", amount), chromedp.ByQuery),
			chromedp.Click(".dialogButtonOk", chromedp.ByQuery),
			chromedp.Sleep(pageSettleDelay),
		); err != nil {
			return fmt.Errorf("transferring %d %s from hero: %w", amount, kind, err)
		}
	}
	return nil
}

// SendMerchant ships resources from the origin village's marketplace.
func (d *ChromeDriver) SendMerchant(ctx context.Context, originID, marketID, targetX, targetY int, r resources.Resources) error {
	path := fmt.Sprintf("/build.php?newdid=%d&id=%d&t=5", originID, marketID)
	if err := d.Navigate(ctx, path); err != nil {
		return err
	}

	actions := []chromedp.Action{
		chromedp.WaitVisible("#xCoordInput", chromedp.ByQuery),
		chromedp.SetValue("#xCoordInput", fmt.Sprintf("%d", targetX), chromedp.ByQuery),
		chromedp.SetValue("#yCoordInput", fmt.Sprintf("%d", targetY), chromedp.ByQuery),
	}
	for i, kind := range resources.AllKinds {
		selector := fmt.Sprintf("#r%d", i+1)
		actions = append(actions,
			chromedp.SetValue(selector, fmt.Sprintf("%d", r.Get(kind)), chromedp.ByQuery))
	}
	actions = append(actions,
		chromedp.Click("#enabledButton", chromedp.ByQuery),
		chromedp.WaitVisible(".sendRessourcesButton", chromedp.ByQuery),
		chromedp.Click(".sendRessourcesButton", chromedp.ByQuery),
	)
	return d.run(15000, actions...)
}

// TrainTroops queues troops in the given military building.
func (d *ChromeDriver) TrainTroops(ctx context.Context, villageID, buildingID, troopTypeID, quantity int) error {
	path := fmt.Sprintf("/build.php?newdid=%d&id=%d", villageID, buildingID)
	if err := d.Navigate(ctx, path); err != nil {
		return err
	}

	input := fmt.Sprintf(`input[name="t%d"]`, troopTypeID)
	return d.run(10000,
		chromedp.WaitVisible(input, chromedp.ByQuery),
		chromedp.SetValue(input, fmt.Sprintf("%d", quantity), chromedp.ByQuery),
		chromedp.Click("button.startTraining", chromedp.ByQuery),
	)
}
