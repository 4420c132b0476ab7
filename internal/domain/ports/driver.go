package ports

import (
	"context"

	"github.com/andrescamacho/travian-go/internal/domain/resources"
)

// Driver is the browser capability surface the core dispatches against.
//
// The interface is defined in the domain layer so the planner, jobs and
// executor stay independent of any concrete browser automation library; the
// adapters package provides the real headless-browser implementation and
// tests run against an in-memory fake.
//
// Every primitive is best-effort: selector waits take an explicit timeout
// in milliseconds and report failure through their return value rather than
// an error. Only a crashed browser session surfaces as an error, and then
// as a shared.DriverFatalError so the executor can restart the driver.
type Driver interface {
	// Navigation.
	Navigate(ctx context.Context, path string) error
	NavigateToVillage(ctx context.Context, villageID int) error
	CurrentURL(ctx context.Context) string
	Stop() error

	// Page capture.
	GetHTML(ctx context.Context, pageName string) (string, error)
	GetVillageInnerHTML(ctx context.Context, villageID int) (dorf1HTML, dorf2HTML string, err error)
	GetPageSource(ctx context.Context, iframeSelector string) (string, error)

	// Interaction.
	Click(ctx context.Context, selector string) bool
	ClickFirst(ctx context.Context, selectors []string) bool
	ClickAll(ctx context.Context, selector string) int
	ClickNth(ctx context.Context, selector string, index int) bool
	PressKey(ctx context.Context, key string) error
	SelectOption(ctx context.Context, selector, value string) error

	// Synchronization.
	WaitForLoadState(ctx context.Context, timeoutMs int)
	WaitForSelector(ctx context.Context, selector string, timeoutMs int) bool
	WaitForSelectorAndClick(ctx context.Context, selector string, timeoutMs int) bool
	Sleep(seconds float64)

	// Inspection.
	IsVisible(ctx context.Context, selector string) bool
	GetTextContent(ctx context.Context, selector string) (string, error)
	CatchFullClassesBySelector(ctx context.Context, selector string) (string, error)

	// Game-specific compound actions.
	TransferResourcesFromHero(ctx context.Context, r resources.Resources) error
	SendMerchant(ctx context.Context, originID, marketID int, targetX, targetY int, r resources.Resources) error
	TrainTroops(ctx context.Context, villageID, buildingID, troopTypeID, quantity int) error
}

// DriverFactory creates driver sessions. The executor uses it to replace a
// crashed browser without tearing the loop down.
type DriverFactory interface {
	NewDriver(ctx context.Context) (Driver, error)
}
