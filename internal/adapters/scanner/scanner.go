package scanner

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
	"github.com/andrescamacho/travian-go/pkg/utils"
)

// Class-token and inline-script patterns of the rendered game pages.
var (
	gidPattern       = regexp.MustCompile(`\bg(\d+)\b`)
	slotPattern      = regexp.MustCompile(`buildingSlot(\d+)`)
	levelPattern     = regexp.MustCompile(`level(\d+)`)
	newdidPattern    = regexp.MustCompile(`newdid=(\d+)`)
	tribePattern     = regexp.MustCompile(`\btribe(\d+)\b`)
	productionJSON   = regexp.MustCompile(`"production"\s*:\s*(\{[^}]*\})`)
	speedPattern     = regexp.MustCompile(`"speed"\s*:\s*(\d+)`)
	adRemainingJSON  = regexp.MustCompile(`"?remainingTime"?\s*[:=]\s*"?(\d+)`)
	boostKindPattern = regexp.MustCompile(`\brsrc(\d)\b`)
	digitsPattern    = regexp.MustCompile(`\d+`)
)

// HTMLScanner parses rendered game pages into typed records. It never
// touches the network: every input is an HTML string already captured by
// the driver.
type HTMLScanner struct{}

var _ ports.Scanner = (*HTMLScanner)(nil)

func New() *HTMLScanner {
	return &HTMLScanner{}
}

func parseDoc(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// parseCoordinate strips the decorative parentheses and pipes around map
// coordinates before parsing.
func parseCoordinate(raw string) (int, error) {
	return utils.ParseGameInt(strings.Trim(strings.TrimSpace(raw), "()|"))
}

// ScanVillageList reads the sidebar village list of the overview page.
func (s *HTMLScanner) ScanVillageList(dorf1HTML string) ([]village.Identity, error) {
	doc, err := parseDoc(dorf1HTML)
	if err != nil {
		return nil, shared.NewParseError("dorf1", "", err.Error())
	}

	var out []village.Identity
	doc.Find("#sidebarBoxVillagelist li.listEntry").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Find("a").Attr("href")
		m := newdidPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id, err := utils.ParseGameInt(m[1])
		if err != nil {
			return
		}
		x, _ := parseCoordinate(sel.Find(".coordinateX").Text())
		y, _ := parseCoordinate(sel.Find(".coordinateY").Text())
		out = append(out, village.Identity{
			ID:   id,
			Name: strings.TrimSpace(sel.Find(".name").Text()),
			X:    x,
			Y:    y,
		})
	})

	if len(out) == 0 {
		return nil, shared.NewParseError("dorf1", "#sidebarBoxVillagelist li.listEntry", "no villages found")
	}
	return out, nil
}

// ScanAccountInfo extracts server- and player-wide values from the overview
// page. Missing optional blocks fall back to sane defaults.
func (s *HTMLScanner) ScanAccountInfo(dorf1HTML string) (game.Account, error) {
	doc, err := parseDoc(dorf1HTML)
	if err != nil {
		return game.Account{}, shared.NewParseError("dorf1", "", err.Error())
	}

	account := game.Account{
		ServerSpeed:           1,
		ProductionBoostActive: make(map[resources.Kind]bool),
	}

	if m := speedPattern.FindStringSubmatch(dorf1HTML); m != nil {
		if speed, err := utils.ParseGameInt(m[1]); err == nil && speed > 0 {
			account.ServerSpeed = float64(speed)
		}
	}
	if cp, err := utils.ParseGameInt(doc.Find("#culture_points .points").Text()); err == nil {
		account.CulturePoints = cp
	}
	if slots, err := utils.ParseGameInt(doc.Find("#culture_points .villageSlots").Text()); err == nil {
		account.VillageSlots = slots
	}
	if remaining, err := utils.ParseGameInt(doc.Find(".beginnersProtection .timer").AttrOr("value", "")); err == nil {
		account.WhenBeginnersProtectionExpires = remaining
	}

	doc.Find(".productionBoostButton .boost.active").Each(func(_ int, sel *goquery.Selection) {
		classes, _ := sel.Attr("class")
		if m := boostKindPattern.FindStringSubmatch(classes); m != nil {
			if n, err := utils.ParseGameInt(m[1]); err == nil {
				kind := resources.Kind(n)
				if kind.IsValid() {
					account.ProductionBoostActive[kind] = true
				}
			}
		}
	})

	return account, nil
}

// ScanVillage assembles one full village from its two rendered pages.
func (s *HTMLScanner) ScanVillage(identity village.Identity, dorf1HTML, dorf2HTML string) (*village.Village, error) {
	stock, err := s.ScanStockBar(dorf1HTML)
	if err != nil {
		return nil, err
	}
	production, err := s.ScanProduction(dorf1HTML)
	if err != nil {
		return nil, err
	}
	pits, err := s.ScanResourceFields(dorf1HTML)
	if err != nil {
		return nil, err
	}
	buildings, err := s.ScanVillageCenter(dorf2HTML)
	if err != nil {
		return nil, err
	}
	tribe, err := s.IdentifyTribe(dorf2HTML)
	if err != nil {
		return nil, err
	}
	queue, err := s.ScanBuildingQueue(dorf1HTML, tribe.ParallelBuildingAllowed())
	if err != nil {
		return nil, err
	}
	// The garrison table lives on the overview page; a village without one
	// simply has no troops at home.
	troops, err := s.ScanTroops(dorf1HTML)
	if err != nil {
		troops = map[string]int{}
	}

	v := &village.Village{
		ID:                identity.ID,
		Name:              identity.Name,
		X:                 identity.X,
		Y:                 identity.Y,
		Tribe:             tribe,
		Resources:         stock.Resources,
		FreeCrop:          stock.FreeCrop,
		WarehouseCapacity: stock.WarehouseCapacity,
		GranaryCapacity:   stock.GranaryCapacity,
		HourlyProduction:  production.Rates,
		FreeCropHourly:    production.FreeCropHourly,
		Pits:              pits,
		Buildings:         buildings,
		Queue:             queue,
		Troops:            troops,
	}

	doc, err := parseDoc(dorf2HTML)
	if err == nil {
		v.IsPermanentCapital = doc.Find(".villageInfobox .capital").Length() > 0
		v.IsUpgradedToCity = doc.Find(".villageInfobox .city").Length() > 0
	}

	if attacks, err := s.ScanIncomingAttacks(dorf1HTML); err == nil && attacks.Count > 0 {
		v.IsUnderAttack = true
		v.IncomingAttackCount = attacks.Count
		v.NextAttackSeconds = attacks.NextAttackSeconds
	}

	return v, nil
}

// ScanStockBar reads the resource bar shared by all village pages.
func (s *HTMLScanner) ScanStockBar(html string) (ports.StockBar, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return ports.StockBar{}, shared.NewParseError("stockBar", "", err.Error())
	}

	read := func(selector string) (int, error) {
		return utils.ParseGameInt(doc.Find(selector).Text())
	}

	lumber, err := read("#l1")
	if err != nil {
		return ports.StockBar{}, shared.NewParseError("stockBar", "#l1", err.Error())
	}
	clay, err := read("#l2")
	if err != nil {
		return ports.StockBar{}, shared.NewParseError("stockBar", "#l2", err.Error())
	}
	iron, err := read("#l3")
	if err != nil {
		return ports.StockBar{}, shared.NewParseError("stockBar", "#l3", err.Error())
	}
	crop, err := read("#l4")
	if err != nil {
		return ports.StockBar{}, shared.NewParseError("stockBar", "#l4", err.Error())
	}

	bar := ports.StockBar{Resources: resources.New(lumber, clay, iron, crop)}
	if freeCrop, err := read("#stockBarFreeCrop"); err == nil {
		bar.FreeCrop = freeCrop
	}
	if cap, err := read(".warehouse .capacity .value"); err == nil {
		bar.WarehouseCapacity = cap
	}
	if cap, err := read(".granary .capacity .value"); err == nil {
		bar.GranaryCapacity = cap
	}
	return bar, nil
}

// ScanProduction reads the hourly production rates from the inline JSON the
// overview page embeds for its own scripts.
func (s *HTMLScanner) ScanProduction(html string) (ports.Production, error) {
	m := productionJSON.FindStringSubmatch(html)
	if m == nil {
		return ports.Production{}, shared.NewParseError("dorf1", "production json", "no production block")
	}

	var rates struct {
		L1 int `json:"l1"`
		L2 int `json:"l2"`
		L3 int `json:"l3"`
		L4 int `json:"l4"`
		L5 int `json:"l5"`
	}
	if err := json.Unmarshal([]byte(m[1]), &rates); err != nil {
		return ports.Production{}, shared.NewParseError("dorf1", "production json", err.Error())
	}

	return ports.Production{
		Rates:          resources.New(rates.L1, rates.L2, rates.L3, rates.L4),
		FreeCropHourly: rates.L5,
	}, nil
}

// ScanResourceFields reads the 18 pit slots around the village.
func (s *HTMLScanner) ScanResourceFields(html string) ([]village.ResourcePit, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, shared.NewParseError("dorf1", "", err.Error())
	}

	var pits []village.ResourcePit
	doc.Find("#resourceFieldContainer a").Each(func(_ int, sel *goquery.Selection) {
		classes, _ := sel.Attr("class")

		slot := slotPattern.FindStringSubmatch(classes)
		gid := gidPattern.FindStringSubmatch(classes)
		if slot == nil || gid == nil {
			return
		}
		id, err1 := utils.ParseGameInt(slot[1])
		kindN, err2 := utils.ParseGameInt(gid[1])
		if err1 != nil || err2 != nil {
			return
		}
		kind := resources.Kind(kindN)
		if !kind.IsValid() {
			return
		}

		level := 0
		if m := levelPattern.FindStringSubmatch(classes); m != nil {
			level, _ = utils.ParseGameInt(m[1])
		}
		pits = append(pits, village.ResourcePit{ID: id, Kind: kind, Level: level})
	})

	if len(pits) == 0 {
		return nil, shared.NewParseError("dorf1", "#resourceFieldContainer", "no resource fields found")
	}
	return pits, nil
}

// ScanVillageCenter reads the built-up center slots of dorf2.
func (s *HTMLScanner) ScanVillageCenter(html string) ([]village.Building, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, shared.NewParseError("dorf2", "", err.Error())
	}

	var buildings []village.Building
	doc.Find("#villageContent .buildingSlot").Each(func(_ int, sel *goquery.Selection) {
		classes, _ := sel.Attr("class")

		slot := slotPattern.FindStringSubmatch(classes)
		gid := gidPattern.FindStringSubmatch(classes)
		if slot == nil || gid == nil {
			return
		}
		id, err1 := utils.ParseGameInt(slot[1])
		gidN, err2 := utils.ParseGameInt(gid[1])
		if err1 != nil || err2 != nil || gidN == 0 {
			// g0 marks an empty slot.
			return
		}

		level := 0
		if m := levelPattern.FindStringSubmatch(classes); m != nil {
			level, _ = utils.ParseGameInt(m[1])
		}
		buildings = append(buildings, village.Building{
			ID:    id,
			Kind:  village.BuildingKind(gidN),
			Level: level,
		})
	})

	return buildings, nil
}

// ScanBuildingQueue reads the active construction list. parallelAllowed
// tells the queue model whether the village runs two independent slots.
func (s *HTMLScanner) ScanBuildingQueue(html string, parallelAllowed bool) (*village.BuildingQueue, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, shared.NewParseError("dorf1", "", err.Error())
	}

	// The queue model only needs the concurrency rule, not the exact
	// tribe; pick representatives accordingly.
	tribe := village.Gauls
	if parallelAllowed {
		tribe = village.Romans
	}
	queue := village.NewBuildingQueue(tribe)

	doc.Find(".buildingList li").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".name").Clone().Children().Remove().End().Text())
		if name == "" {
			return
		}
		// The level cell reads "level N"; only the digits matter.
		level, _ := utils.ParseGameInt(digitsPattern.FindString(sel.Find(".lvl").Text()))

		remaining := 0
		if val, ok := sel.Find(".buildDuration .timer").Attr("value"); ok {
			remaining, _ = utils.ParseGameInt(val)
		} else if secs, err := utils.ParseHMS(sel.Find(".buildDuration").Text()); err == nil {
			remaining = secs
		}

		queue.AddJob(village.BuildingJob{
			BuildingName:         name,
			TargetLevel:          level,
			TimeRemainingSeconds: remaining,
		})
	})

	return queue, nil
}

// ScanHeroInfo combines the hero attributes and inventory pages.
func (s *HTMLScanner) ScanHeroInfo(heroAttrsHTML, inventoryHTML string) (*hero.Info, error) {
	attrsDoc, err := parseDoc(heroAttrsHTML)
	if err != nil {
		return nil, shared.NewParseError("hero/attributes", "", err.Error())
	}
	invDoc, err := parseDoc(inventoryHTML)
	if err != nil {
		return nil, shared.NewParseError("hero/inventory", "", err.Error())
	}

	info := &hero.Info{Attributes: make(map[hero.Attribute]int)}

	rawHealth := utils.StripBidiControls(attrsDoc.Find(".health .value").Text())
	health, err := utils.ParseGameInt(strings.TrimSuffix(strings.TrimSpace(rawHealth), "%"))
	if err != nil {
		return nil, shared.NewParseError("hero/attributes", ".health .value", err.Error())
	}
	info.Health = health

	if xp, err := utils.ParseGameInt(attrsDoc.Find(".experience .value").Text()); err == nil {
		info.Experience = xp
	}
	if points, err := utils.ParseGameInt(attrsDoc.Find("#availablePoints").Text()); err == nil {
		info.PointsAvailable = points
	}
	if adv, err := utils.ParseGameInt(attrsDoc.Find(".adventure .content").Text()); err == nil {
		info.Adventures = adv
	}
	info.IsAvailable = attrsDoc.Find(".heroStatus .statusHome").Length() > 0

	attrsDoc.Find(".pointsValueSetter input").Each(func(i int, sel *goquery.Selection) {
		if i >= len(hero.AllAttributes) {
			return
		}
		if n, err := utils.ParseGameInt(sel.AttrOr("value", "")); err == nil {
			info.Attributes[hero.AllAttributes[i]] = n
		}
	})

	inventory := resources.Zero
	invDoc.Find("#heroItems .resource").Each(func(_ int, sel *goquery.Selection) {
		classes, _ := sel.Attr("class")
		amount, err := utils.ParseGameInt(sel.Find(".amount").Text())
		if err != nil {
			return
		}
		switch {
		case strings.Contains(classes, "lumber"):
			inventory = inventory.WithKind(resources.Lumber, amount)
		case strings.Contains(classes, "clay"):
			inventory = inventory.WithKind(resources.Clay, amount)
		case strings.Contains(classes, "iron"):
			inventory = inventory.WithKind(resources.Iron, amount)
		case strings.Contains(classes, "crop"):
			inventory = inventory.WithKind(resources.Crop, amount)
		}
	})
	info.Inventory = inventory

	return info, nil
}

// ScanTroops reads the garrison table of the village statistics page.
func (s *HTMLScanner) ScanTroops(html string) (map[string]int, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, shared.NewParseError("troops", "", err.Error())
	}

	out := make(map[string]int)
	doc.Find("#troops tbody tr").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".un").Text())
		if name == "" {
			return
		}
		if count, err := utils.ParseGameInt(sel.Find(".num").Text()); err == nil {
			out[name] = count
		}
	})
	return out, nil
}

// IsRewardAvailable reports whether the questmaster button carries the
// collectable-reward bubble.
func (s *HTMLScanner) IsRewardAvailable(html string) bool {
	doc, err := parseDoc(html)
	if err != nil {
		return false
	}
	return doc.Find("#questmasterButton .newQuestSpeechBubble").Length() > 0
}

// IsDailyQuestIndicator reports whether the navigation fragment shows the
// daily-quest progress marker.
func (s *HTMLScanner) IsDailyQuestIndicator(navigationFragment string) bool {
	doc, err := parseDoc(navigationFragment)
	if err != nil {
		return false
	}
	return doc.Find(".dailyQuests .indicator").Length() > 0
}

// ScanAdvertiseRemainingTime reads the countdown of a playing video ad.
func (s *HTMLScanner) ScanAdvertiseRemainingTime(videoIframeHTML string) (int, error) {
	doc, err := parseDoc(videoIframeHTML)
	if err == nil {
		if val, ok := doc.Find("#videoTimer").Attr("data-remaining"); ok {
			return utils.ParseGameInt(val)
		}
	}
	if m := adRemainingJSON.FindStringSubmatch(videoIframeHTML); m != nil {
		return utils.ParseGameInt(m[1])
	}
	return 0, shared.NewParseError("videoIframe", "#videoTimer", "no countdown found")
}

// ScanIncomingAttacks counts hostile movements against the village.
func (s *HTMLScanner) ScanIncomingAttacks(movementsHTML string) (ports.IncomingAttacks, error) {
	doc, err := parseDoc(movementsHTML)
	if err != nil {
		return ports.IncomingAttacks{}, shared.NewParseError("movements", "", err.Error())
	}

	var out ports.IncomingAttacks
	doc.Find("#movements .attack").Each(func(i int, sel *goquery.Selection) {
		out.Count++
		if i > 0 {
			return
		}
		if val, ok := sel.Find(".timer").Attr("value"); ok {
			out.NextAttackSeconds, _ = utils.ParseGameInt(val)
		} else if secs, err := utils.ParseHMS(sel.Find(".timer").Text()); err == nil {
			out.NextAttackSeconds = secs
		}
	})
	return out, nil
}

// IdentifyTribe reads the tribe from the body class tokens of dorf2.
func (s *HTMLScanner) IdentifyTribe(dorf2HTML string) (village.Tribe, error) {
	m := tribePattern.FindStringSubmatch(dorf2HTML)
	if m == nil {
		return village.TribeUnknown, shared.NewParseError("dorf2", "body.tribeN", "no tribe class")
	}
	n, err := utils.ParseGameInt(m[1])
	if err != nil {
		return village.TribeUnknown, shared.NewParseError("dorf2", "body.tribeN", err.Error())
	}

	switch n {
	case 1:
		return village.Romans, nil
	case 2:
		return village.Teutons, nil
	case 3:
		return village.Gauls, nil
	case 6:
		return village.Egyptians, nil
	case 7:
		return village.Huns, nil
	case 8:
		return village.Spartans, nil
	case 9:
		return village.Nors, nil
	default:
		return village.TribeUnknown, nil
	}
}
