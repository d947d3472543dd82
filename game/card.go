package game

// CardType partitions the catalog into the five playable card classes.
type CardType string

const (
	GeneralCard   CardType = "general"
	StrategyCard  CardType = "strategy"
	ResourceCard  CardType = "resource"
	EventCard     CardType = "event"
	TacticianCard CardType = "tactician"
)

type Faction string

const (
	Wei     Faction = "wei"
	Shu     Faction = "shu"
	Wu      Faction = "wu"
	Neutral Faction = "neutral"
)

type Rarity string

const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Legendary Rarity = "legendary"
)

// StrategyEffect is the tagged variant for strategy cards. Offensive effects
// (siege, ambush, burn) may join an attack set; REINFORCE is defense-only.
type StrategyEffect string

const (
	Burn      StrategyEffect = "BURN"      // reduces defense power
	Ambush    StrategyEffect = "AMBUSH"    // adds attack power
	Siege     StrategyEffect = "SIEGE"     // adds attack power
	Reinforce StrategyEffect = "REINFORCE" // adds defense power
)

// offensiveStrategy reports whether a strategy effect may be committed to an
// attack set.
func offensiveStrategy(e StrategyEffect) bool {
	switch e {
	case Siege, Ambush, Burn:
		return true
	}
	return false
}

// ResourceBonus is the tagged variant for the secondary effect of a resource
// card. The zero value means the card only grants its resource value.
type ResourceBonus string

const (
	NoBonus          ResourceBonus = ""
	Draw1            ResourceBonus = "DRAW_1"
	AttackBoost      ResourceBonus = "ATTACK_BOOST"       // +2 attack this turn
	AttackBoostSmall ResourceBonus = "ATTACK_BOOST_SMALL" // +1 attack this turn
	TerritoryDefense ResourceBonus = "TERRITORY_DEFENSE"  // +2 defense on one territory
)

// EventEffect is the tagged variant for event cards.
type EventEffect string

const (
	Draw3        EventEffect = "DRAW_3"        // draw 3 cards immediately
	AttackDebuff EventEffect = "ATTACK_DEBUFF" // all attacks -2 while active
	DiscardAll1  EventEffect = "DISCARD_ALL_1" // every player discards 1 card
	BlockNeutral EventEffect = "BLOCK_NEUTRAL" // unowned territories cannot be taken
	BlockAttack  EventEffect = "BLOCK_ATTACK"  // no attacks at all
	AttackBuff   EventEffect = "ATTACK_BUFF"   // owner's attacks +1 while active
)

type EventType string

const (
	Weather   EventType = "weather"
	Rebellion EventType = "rebellion"
	Diplomacy EventType = "diplomacy"
	Fortune   EventType = "fortune"
)

// Card is an immutable catalog definition. Type-specific fields are only
// meaningful for the matching Type; the rest stay at their zero value.
type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	LocalName string   `json:"nameKo"`
	Type      CardType `json:"type"`
	Faction   Faction  `json:"faction"`
	Rarity    Rarity   `json:"rarity"`
	Cost      int      `json:"cost"`

	// general
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`

	// strategy (Value doubles as the resource value below)
	Effect StrategyEffect `json:"effect,omitempty"`
	Value  int            `json:"value,omitempty"`

	// resource
	Bonus ResourceBonus `json:"bonusEffect,omitempty"`

	// event
	EventKind EventEffect `json:"eventEffect,omitempty"`
	EventType EventType   `json:"eventType,omitempty"`
	Duration  int         `json:"duration,omitempty"`
	Global    bool        `json:"globalEffect,omitempty"`

	// tactician
	Tactics int `json:"tactics,omitempty"`

	// copies of this definition in a fresh deck (0 means 1)
	Quantity int `json:"-"`
}

// CardInstance is one physical copy of a Card. InstanceID distinguishes
// duplicate copies while they sit in a deck, hand, discard pile or garrison.
// An instance belongs to exactly one zone at a time; moving it is always
// remove-then-append, never a copy.
type CardInstance struct {
	Card
	InstanceID string `json:"instanceId"`
}
