package models

// Slot names one instrument position in MarketData. The string is the JSON key.
type Slot string

const (
	SlotUSDKRW    Slot = "usdkrw"
	SlotGold      Slot = "gold"
	SlotSP500     Slot = "sp500"
	SlotBitcoin   Slot = "bitcoin"
	SlotNasdaq    Slot = "nasdaq"
	SlotKOSPI     Slot = "kospi"
	SlotFearGreed Slot = "fearGreed"
	SlotSCFI      Slot = "scfi"
)

// Slots lists every slot in display order.
func Slots() []Slot {
	return []Slot{SlotUSDKRW, SlotGold, SlotSP500, SlotBitcoin, SlotNasdaq, SlotKOSPI, SlotFearGreed, SlotSCFI}
}

// IsValidSlot returns true if s names one of the eight slots.
func IsValidSlot(s Slot) bool {
	for _, v := range Slots() {
		if v == s {
			return true
		}
	}
	return false
}

type MarketDataItem struct {
	Value   string  `json:"value"`
	Change  float64 `json:"change"`
	Loading bool    `json:"loading"`
}

type FearGreedData struct {
	Value   string `json:"value"`
	Status  string `json:"status"`
	Loading bool   `json:"loading"`
}

// MarketData is one complete market snapshot. All eight slots are always present.
type MarketData struct {
	USDKRW    MarketDataItem `json:"usdkrw"`
	Gold      MarketDataItem `json:"gold"`
	SP500     MarketDataItem `json:"sp500"`
	Bitcoin   MarketDataItem `json:"bitcoin"`
	Nasdaq    MarketDataItem `json:"nasdaq"`
	KOSPI     MarketDataItem `json:"kospi"`
	FearGreed FearGreedData  `json:"fearGreed"`
	SCFI      MarketDataItem `json:"scfi"`
}

// Quote is a normalized source reading. Status is only used by the sentiment slot.
type Quote struct {
	Value  string
	Change float64
	Status string
}

func (m *MarketData) item(s Slot) *MarketDataItem {
	switch s {
	case SlotUSDKRW:
		return &m.USDKRW
	case SlotGold:
		return &m.Gold
	case SlotSP500:
		return &m.SP500
	case SlotBitcoin:
		return &m.Bitcoin
	case SlotNasdaq:
		return &m.Nasdaq
	case SlotKOSPI:
		return &m.KOSPI
	case SlotSCFI:
		return &m.SCFI
	}
	return nil
}

// Set stores q into slot s with loading cleared.
func (m *MarketData) Set(s Slot, q Quote) {
	if s == SlotFearGreed {
		m.FearGreed = FearGreedData{Value: q.Value, Status: q.Status}
		return
	}
	if it := m.item(s); it != nil {
		*it = MarketDataItem{Value: q.Value, Change: q.Change}
	}
}

// Get reads slot s back as a Quote.
func (m MarketData) Get(s Slot) Quote {
	if s == SlotFearGreed {
		return Quote{Value: m.FearGreed.Value, Status: m.FearGreed.Status}
	}
	if it := m.item(s); it != nil {
		return Quote{Value: it.Value, Change: it.Change}
	}
	return Quote{}
}

// Fallbacks are the static readings used when every live attempt for a slot fails.
var Fallbacks = map[Slot]Quote{
	SlotUSDKRW:    {Value: "1,385.20", Change: 0.12},
	SlotGold:      {Value: "128,450", Change: 0.35},
	SlotSP500:     {Value: "588.27", Change: 0.41},
	SlotBitcoin:   {Value: "143,250,000", Change: 1.05},
	SlotNasdaq:    {Value: "19,280.79", Change: 0.58},
	SlotKOSPI:     {Value: "35,120", Change: -0.32},
	SlotFearGreed: {Value: "50", Status: "중립"},
	SlotSCFI:      {Value: "1,389.45", Change: -1.20},
}

// FallbackMarketData returns a snapshot made only of fallback readings.
func FallbackMarketData() MarketData {
	var m MarketData
	for _, s := range Slots() {
		m.Set(s, Fallbacks[s])
	}
	return m
}

// ManualMarketItem is an operator override for a numeric slot.
type ManualMarketItem struct {
	Enabled bool    `json:"enabled"`
	Value   string  `json:"value"`
	Change  float64 `json:"change"`
}

// ManualFearGreedItem is an operator override for the sentiment slot.
type ManualFearGreedItem struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
	Status  string `json:"status"`
}

type ManualMarketData struct {
	USDKRW    ManualMarketItem    `json:"usdkrw"`
	Gold      ManualMarketItem    `json:"gold"`
	SP500     ManualMarketItem    `json:"sp500"`
	Bitcoin   ManualMarketItem    `json:"bitcoin"`
	Nasdaq    ManualMarketItem    `json:"nasdaq"`
	KOSPI     ManualMarketItem    `json:"kospi"`
	FearGreed ManualFearGreedItem `json:"fearGreed"`
	SCFI      ManualMarketItem    `json:"scfi"`
}

func (i ManualMarketItem) active() bool    { return i.Enabled && i.Value != "" }
func (i ManualFearGreedItem) active() bool { return i.Enabled && i.Value != "" }

func mergeItem(live MarketDataItem, manual ManualMarketItem) MarketDataItem {
	if !manual.active() {
		return live
	}
	return MarketDataItem{Value: manual.Value, Change: manual.Change}
}

// Merge overlays enabled, non-empty manual entries on data. Neither argument is modified.
// A nil manual passes data through unchanged.
func Merge(data MarketData, manual *ManualMarketData) MarketData {
	if manual == nil {
		return data
	}
	out := data
	out.USDKRW = mergeItem(data.USDKRW, manual.USDKRW)
	out.Gold = mergeItem(data.Gold, manual.Gold)
	out.SP500 = mergeItem(data.SP500, manual.SP500)
	out.Bitcoin = mergeItem(data.Bitcoin, manual.Bitcoin)
	out.Nasdaq = mergeItem(data.Nasdaq, manual.Nasdaq)
	out.KOSPI = mergeItem(data.KOSPI, manual.KOSPI)
	out.SCFI = mergeItem(data.SCFI, manual.SCFI)
	if manual.FearGreed.active() {
		out.FearGreed = FearGreedData{Value: manual.FearGreed.Value, Status: manual.FearGreed.Status}
	}
	return out
}
