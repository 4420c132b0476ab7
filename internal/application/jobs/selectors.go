package jobs

// CSS selectors for the game UI. Kept in one place because the markup
// changes with game updates and the selectors are shared between jobs.
const (
	selContractBox        = "#contract"
	selBuildButton        = "#contract .section1 button.green.build"
	selContractDuration   = "#contract .duration .value"
	selFastDuration       = "#contract .durationFastBuilding .value"
	selVideoBuildButton   = "#contract button.videoFeatureButton"
	selGenericContract    = ".contractWrapper button.new.build"

	selVideoArea          = "#videoArea"
	selVideoConfirm       = ".videoFeature .dialogButtonOk"
	selVideoCancel        = "#videoArea .closeButton"
	selVideoIframe        = "#videoArea iframe"

	selAdventureExplore   = ".adventure.exploring button.green"
	selAdventureBonusVid  = ".adventureVideoButton"
	selHeroAttrsSave      = "#savePoints"
	selHeroPlusButton     = ".pointsValueSetter button.plus"

	selDailyQuestDialog   = "#dailyQuests"
	selDailyQuestPoints   = "#dailyQuests .achievedPoints .points"
	selDailyQuestCollect  = "#dailyQuests button.collectReward"
	selDialogClose        = "#dialogCancelButton"

	selQuestmasterOpen     = "#questmasterButton"
	selQuestmasterCollect  = ".questButtons button.collect"
	selQuestmasterForward  = ".tabNavigation .forward"
	selQuestmasterGeneral  = ".tabItem.generalTasks"

	selProductionBoost    = "#productionBoostButton"
	selBoostVideoButton   = ".boostVideoButton:not(.active)"

	selMapAltArrow        = "#mapContainer"
	selFoundVillageSubmit = "button.green.founding"
	selTribeSelect        = "select[name=tribe]"
)

// adventureContinueSelectors are tried in priority order after an adventure
// is launched; the first visible one is clicked.
var adventureContinueSelectors = []string{
	".adventure button.continue",
	"#ok",
	"button.green.ok",
	".dialogButtonOk",
}
