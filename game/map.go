package game

// Territory data for the 46-city Three Kingdoms map, grouped into seven
// regions. Adjacency in the raw table may be declared one-way; every graph
// walk in this package goes through a bidirectional neighbor map so A->B
// always implies B->A.

type Region string

const (
	Hebei     Region = "hebei"
	Zhongyuan Region = "zhongyuan"
	Xibei     Region = "xibei"
	Jiangnan  Region = "jiangnan"
	Jingxiang Region = "jingxiang"
	Yizhou    Region = "yizhou"
	Jiaozhi   Region = "jiaozhi"
)

// regionOrder fixes the iteration order for region bonuses: the first fully
// owned region in this order pays full value, later ones pay half.
var regionOrder = []Region{Hebei, Zhongyuan, Xibei, Jiangnan, Jingxiang, Yizhou, Jiaozhi}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Territory carries both the static catalog fields and the two dynamic ones
// (Owner, Garrison) that live inside a game state.
type Territory struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	LocalName    string         `json:"nameKo"`
	Region       Region         `json:"region"`
	Value        int            `json:"value"`
	Position     Position       `json:"position"`
	AdjacentTo   []string       `json:"adjacentTo"`
	Owner        string         `json:"owner"`
	Garrison     []CardInstance `json:"garrison"`
	DefenseBonus int            `json:"defenseBonus"`
}

// Turn and hand constants.
const (
	ActionsPerTurn  = 3
	InitialHandSize = 5
	CardsPerDraw    = 2
	SoftHandSize    = 8
	MaxHandSize     = 9
)

// Victory defaults.
const (
	DefaultVictoryTerritories = 18
	DefaultVictoryValue       = 30
	DefaultConfirmationTurns  = 1
)

// Territory-bonus tuning.
const (
	territoryDrawThreshold   = 5  // +1 card per 5 territories
	territoryActionThreshold = 10 // +1 action per 10 territories
	drawBonusCap             = 2
	actionBonusCap           = 1
	overexpansionThreshold   = 16 // action -1 at or past this count
)

var playerColors = []string{"#EF4444", "#3B82F6", "#22C55E", "#F59E0B"}

// PlayerColor returns the display color for a seat index.
func PlayerColor(index int) string {
	return playerColors[index%len(playerColors)]
}

// startingPositions keeps players maximally spread for each player count.
var startingPositions = map[int][]string{
	2: {"liaodong", "nanhai"},
	3: {"liaodong", "chengdu", "kuaiji"},
	4: {"liaodong", "wuwei", "nanhai", "kuaiji"},
}

type regionBonus struct {
	Draw   int
	Action int
}

var regionDominationBonus = map[Region]regionBonus{
	Hebei:     {Draw: 1, Action: 0},
	Zhongyuan: {Draw: 1, Action: 1},
	Xibei:     {Draw: 0, Action: 1},
	Jiangnan:  {Draw: 2, Action: 0},
	Jingxiang: {Draw: 1, Action: 1},
	Yizhou:    {Draw: 0, Action: 2},
	Jiaozhi:   {Draw: 1, Action: 0},
}

var regionNames = map[Region]string{
	Hebei:     "하북",
	Zhongyuan: "중원",
	Xibei:     "서북",
	Jiangnan:  "강남",
	Jingxiang: "형상",
	Yizhou:    "익주",
	Jiaozhi:   "교지",
}

// fragmentation penalties: 2 disconnected groups cost a card, 3 or more cost
// a card and an action.
var fragmentationPenalty = map[int]regionBonus{
	2: {Draw: -1, Action: 0},
	3: {Draw: -1, Action: -1},
}

var initialTerritories = []Territory{
	// Hebei - 7 cities
	{ID: "jibei", Name: "Jibei", LocalName: "계북", Region: Hebei, Value: 2, Position: Position{380, 30}, AdjacentTo: []string{"beiping", "nanpi", "dai"}, DefenseBonus: 1},
	{ID: "beiping", Name: "Beiping", LocalName: "북평", Region: Hebei, Value: 2, Position: Position{450, 50}, AdjacentTo: []string{"jibei", "liaodong", "nanpi"}, DefenseBonus: 2},
	{ID: "liaodong", Name: "Liaodong", LocalName: "요동", Region: Hebei, Value: 1, Position: Position{550, 30}, AdjacentTo: []string{"beiping"}, DefenseBonus: 2},
	{ID: "nanpi", Name: "Nanpi", LocalName: "남피", Region: Hebei, Value: 2, Position: Position{400, 90}, AdjacentTo: []string{"jibei", "beiping", "ye", "pingyuan"}, DefenseBonus: 0},
	{ID: "dai", Name: "Dai", LocalName: "대", Region: Hebei, Value: 1, Position: Position{300, 50}, AdjacentTo: []string{"jibei", "jinyang", "ye"}, DefenseBonus: 1},
	{ID: "ye", Name: "Ye", LocalName: "업", Region: Hebei, Value: 3, Position: Position{350, 130}, AdjacentTo: []string{"dai", "nanpi", "pingyuan", "jinyang", "luoyang"}, DefenseBonus: 2},
	{ID: "pingyuan", Name: "Pingyuan", LocalName: "평원", Region: Hebei, Value: 2, Position: Position{430, 140}, AdjacentTo: []string{"nanpi", "ye", "beihai"}, DefenseBonus: 0},

	// Zhongyuan - 8 cities
	{ID: "luoyang", Name: "Luoyang", LocalName: "낙양", Region: Zhongyuan, Value: 3, Position: Position{280, 200}, AdjacentTo: []string{"ye", "jinyang", "changan", "wancheng", "xuchang", "puyang"}, DefenseBonus: 2},
	{ID: "xuchang", Name: "Xuchang", LocalName: "허창", Region: Zhongyuan, Value: 3, Position: Position{350, 230}, AdjacentTo: []string{"luoyang", "puyang", "chenliu", "runan", "wancheng"}, DefenseBonus: 2},
	{ID: "puyang", Name: "Puyang", LocalName: "복양", Region: Zhongyuan, Value: 2, Position: Position{400, 180}, AdjacentTo: []string{"ye", "pingyuan", "beihai", "chenliu", "xuchang", "luoyang"}, DefenseBonus: 0},
	{ID: "chenliu", Name: "Chenliu", LocalName: "진류", Region: Zhongyuan, Value: 2, Position: Position{420, 230}, AdjacentTo: []string{"puyang", "beihai", "xiapi", "runan", "xuchang"}, DefenseBonus: 0},
	{ID: "beihai", Name: "Beihai", LocalName: "북해", Region: Zhongyuan, Value: 2, Position: Position{490, 160}, AdjacentTo: []string{"pingyuan", "puyang", "chenliu", "xiapi"}, DefenseBonus: 0},
	{ID: "xiapi", Name: "Xiapi", LocalName: "하비", Region: Zhongyuan, Value: 2, Position: Position{480, 240}, AdjacentTo: []string{"beihai", "chenliu", "runan", "shouchun", "guangling"}, DefenseBonus: 1},
	{ID: "runan", Name: "Runan", LocalName: "여남", Region: Zhongyuan, Value: 2, Position: Position{400, 290}, AdjacentTo: []string{"xuchang", "chenliu", "xiapi", "shouchun", "wancheng", "xinye"}, DefenseBonus: 0},
	{ID: "wancheng", Name: "Wancheng", LocalName: "완", Region: Zhongyuan, Value: 2, Position: Position{310, 280}, AdjacentTo: []string{"luoyang", "xuchang", "runan", "xinye", "shangyong"}, DefenseBonus: 1},

	// Xibei - 6 cities
	{ID: "jinyang", Name: "Jinyang", LocalName: "진양", Region: Xibei, Value: 2, Position: Position{230, 100}, AdjacentTo: []string{"dai", "ye", "luoyang", "changan", "anding"}, DefenseBonus: 2},
	{ID: "changan", Name: "Chang'an", LocalName: "장안", Region: Xibei, Value: 3, Position: Position{180, 180}, AdjacentTo: []string{"jinyang", "luoyang", "anding", "tianshui", "hanzhong"}, DefenseBonus: 2},
	{ID: "anding", Name: "Anding", LocalName: "안정", Region: Xibei, Value: 1, Position: Position{130, 120}, AdjacentTo: []string{"jinyang", "changan", "tianshui", "wuwei"}, DefenseBonus: 1},
	{ID: "tianshui", Name: "Tianshui", LocalName: "천수", Region: Xibei, Value: 2, Position: Position{100, 180}, AdjacentTo: []string{"anding", "changan", "hanzhong", "wuwei"}, DefenseBonus: 1},
	{ID: "wuwei", Name: "Wuwei", LocalName: "무위", Region: Xibei, Value: 1, Position: Position{50, 100}, AdjacentTo: []string{"anding", "tianshui"}, DefenseBonus: 2},
	{ID: "hanzhong", Name: "Hanzhong", LocalName: "한중", Region: Xibei, Value: 2, Position: Position{150, 260}, AdjacentTo: []string{"changan", "tianshui", "shangyong", "zitong"}, DefenseBonus: 3},

	// Jiangnan - 8 cities
	{ID: "shouchun", Name: "Shouchun", LocalName: "수춘", Region: Jiangnan, Value: 2, Position: Position{450, 320}, AdjacentTo: []string{"runan", "xiapi", "guangling", "lujiang", "xinye"}, DefenseBonus: 1},
	{ID: "guangling", Name: "Guangling", LocalName: "광릉", Region: Jiangnan, Value: 2, Position: Position{520, 290}, AdjacentTo: []string{"xiapi", "shouchun", "jianye", "wujun"}, DefenseBonus: 0},
	{ID: "lujiang", Name: "Lujiang", LocalName: "노강", Region: Jiangnan, Value: 2, Position: Position{420, 370}, AdjacentTo: []string{"shouchun", "jianye", "chaisang", "xinye"}, DefenseBonus: 0},
	{ID: "jianye", Name: "Jianye", LocalName: "건업", Region: Jiangnan, Value: 3, Position: Position{490, 360}, AdjacentTo: []string{"guangling", "lujiang", "wujun", "chaisang", "kuaiji"}, DefenseBonus: 2},
	{ID: "wujun", Name: "Wujun", LocalName: "오군", Region: Jiangnan, Value: 2, Position: Position{550, 380}, AdjacentTo: []string{"guangling", "jianye", "kuaiji"}, DefenseBonus: 1},
	{ID: "kuaiji", Name: "Kuaiji", LocalName: "회계", Region: Jiangnan, Value: 2, Position: Position{560, 440}, AdjacentTo: []string{"jianye", "wujun", "poyang"}, DefenseBonus: 1},
	{ID: "chaisang", Name: "Chaisang", LocalName: "시상", Region: Jiangnan, Value: 2, Position: Position{400, 420}, AdjacentTo: []string{"lujiang", "jianye", "poyang", "changsha"}, DefenseBonus: 1},
	{ID: "poyang", Name: "Poyang", LocalName: "파양", Region: Jiangnan, Value: 1, Position: Position{470, 460}, AdjacentTo: []string{"kuaiji", "chaisang", "changsha", "jiaozhi_city"}, DefenseBonus: 0},

	// Jingxiang - 7 cities
	{ID: "xinye", Name: "Xinye", LocalName: "신야", Region: Jingxiang, Value: 1, Position: Position{330, 340}, AdjacentTo: []string{"wancheng", "runan", "shouchun", "lujiang", "xiangyang"}, DefenseBonus: 0},
	{ID: "shangyong", Name: "Shangyong", LocalName: "상용", Region: Jingxiang, Value: 1, Position: Position{220, 300}, AdjacentTo: []string{"wancheng", "hanzhong", "xiangyang", "zitong"}, DefenseBonus: 2},
	{ID: "xiangyang", Name: "Xiangyang", LocalName: "양양", Region: Jingxiang, Value: 2, Position: Position{280, 370}, AdjacentTo: []string{"xinye", "shangyong", "jiangling", "changsha"}, DefenseBonus: 2},
	{ID: "jiangling", Name: "Jiangling", LocalName: "강릉", Region: Jingxiang, Value: 2, Position: Position{300, 420}, AdjacentTo: []string{"xiangyang", "changsha", "wuling", "yong_an"}, DefenseBonus: 1},
	{ID: "changsha", Name: "Changsha", LocalName: "장사", Region: Jingxiang, Value: 2, Position: Position{360, 470}, AdjacentTo: []string{"xiangyang", "jiangling", "chaisang", "poyang", "lingling", "guiyang"}, DefenseBonus: 0},
	{ID: "lingling", Name: "Lingling", LocalName: "영릉", Region: Jingxiang, Value: 1, Position: Position{320, 520}, AdjacentTo: []string{"changsha", "wuling", "guiyang"}, DefenseBonus: 0},
	{ID: "guiyang", Name: "Guiyang", LocalName: "계양", Region: Jingxiang, Value: 1, Position: Position{400, 540}, AdjacentTo: []string{"changsha", "lingling", "jiaozhi_city"}, DefenseBonus: 0},

	// Yizhou - 7 cities
	{ID: "zitong", Name: "Zitong", LocalName: "자동", Region: Yizhou, Value: 2, Position: Position{140, 340}, AdjacentTo: []string{"hanzhong", "shangyong", "chengdu", "jiameng"}, DefenseBonus: 2},
	{ID: "jiameng", Name: "Jiameng", LocalName: "가맹관", Region: Yizhou, Value: 1, Position: Position{100, 300}, AdjacentTo: []string{"zitong", "chengdu"}, DefenseBonus: 3},
	{ID: "chengdu", Name: "Chengdu", LocalName: "성도", Region: Yizhou, Value: 3, Position: Position{120, 380}, AdjacentTo: []string{"zitong", "jiameng", "jiangzhou", "yong_an"}, DefenseBonus: 2},
	{ID: "jiangzhou", Name: "Jiangzhou", LocalName: "강주", Region: Yizhou, Value: 2, Position: Position{180, 430}, AdjacentTo: []string{"chengdu", "yong_an", "nanzhong"}, DefenseBonus: 1},
	{ID: "yong_an", Name: "Yong An", LocalName: "영안", Region: Yizhou, Value: 2, Position: Position{230, 450}, AdjacentTo: []string{"chengdu", "jiangzhou", "jiangling", "wuling"}, DefenseBonus: 2},
	{ID: "wuling", Name: "Wuling", LocalName: "무릉", Region: Yizhou, Value: 1, Position: Position{270, 500}, AdjacentTo: []string{"yong_an", "jiangling", "lingling", "nanzhong"}, DefenseBonus: 1},
	{ID: "nanzhong", Name: "Nanzhong", LocalName: "남중", Region: Yizhou, Value: 1, Position: Position{140, 500}, AdjacentTo: []string{"jiangzhou", "wuling", "jiaozhi_city", "rinan"}, DefenseBonus: 2},

	// Jiaozhi - 3 cities
	{ID: "jiaozhi_city", Name: "Jiaozhi", LocalName: "교지", Region: Jiaozhi, Value: 1, Position: Position{280, 580}, AdjacentTo: []string{"nanzhong", "guiyang", "poyang", "nanhai", "rinan"}, DefenseBonus: 1},
	{ID: "nanhai", Name: "Nanhai", LocalName: "남해", Region: Jiaozhi, Value: 1, Position: Position{420, 600}, AdjacentTo: []string{"jiaozhi_city"}, DefenseBonus: 0},
	{ID: "rinan", Name: "Rinan", LocalName: "일남", Region: Jiaozhi, Value: 1, Position: Position{200, 600}, AdjacentTo: []string{"nanzhong", "jiaozhi_city"}, DefenseBonus: 0},
}

// regionTerritories maps each region to its member territory ids, derived
// once from the catalog.
var regionTerritories = func() map[Region][]string {
	m := make(map[Region][]string)
	for _, t := range initialTerritories {
		m[t.Region] = append(m[t.Region], t.ID)
	}
	return m
}()

// catalogAdjacency is the repaired bidirectional neighbor map for the
// static catalog, shared by every game.
var catalogAdjacency = buildAdjacency(newTerritories())

// newTerritories returns a fresh, unowned copy of the catalog for one game.
func newTerritories() []*Territory {
	out := make([]*Territory, len(initialTerritories))
	for i := range initialTerritories {
		t := initialTerritories[i]
		t.AdjacentTo = append([]string(nil), t.AdjacentTo...)
		t.Garrison = []CardInstance{}
		out[i] = &t
	}
	return out
}

// buildAdjacency builds a bidirectional neighbor map from territory data,
// repairing any one-way declarations in the raw table.
func buildAdjacency(territories []*Territory) map[string][]string {
	seen := make(map[string]map[string]bool, len(territories))
	for _, t := range territories {
		if seen[t.ID] == nil {
			seen[t.ID] = make(map[string]bool)
		}
	}
	for _, t := range territories {
		for _, adj := range t.AdjacentTo {
			if seen[adj] == nil {
				continue // unknown id in raw data
			}
			seen[t.ID][adj] = true
			seen[adj][t.ID] = true
		}
	}
	out := make(map[string][]string, len(seen))
	for id, neighbors := range seen {
		for n := range neighbors {
			out[id] = append(out[id], n)
		}
	}
	return out
}
