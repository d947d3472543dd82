package game

// Card catalog. Generals enter the deck once per Quantity; every non-general
// definition is duplicated nonGeneralMultiplier times to keep the draw mix
// from being wall-to-wall generals.

const nonGeneralMultiplier = 2

var generals = []Card{
	{ID: "caocao", Name: "Cao Cao", LocalName: "조조", Type: GeneralCard, Faction: Wei, Rarity: Legendary, Cost: 1, Attack: 5, Defense: 4},
	{ID: "xiahoudun", Name: "Xiahou Dun", LocalName: "하후돈", Type: GeneralCard, Faction: Wei, Rarity: Rare, Cost: 1, Attack: 5, Defense: 3},
	{ID: "zhangliao", Name: "Zhang Liao", LocalName: "장료", Type: GeneralCard, Faction: Wei, Rarity: Rare, Cost: 1, Attack: 5, Defense: 4},
	{ID: "xuhuang", Name: "Xu Huang", LocalName: "서황", Type: GeneralCard, Faction: Wei, Rarity: Common, Cost: 1, Attack: 4, Defense: 4},
	{ID: "dianwei", Name: "Dian Wei", LocalName: "전위", Type: GeneralCard, Faction: Wei, Rarity: Rare, Cost: 1, Attack: 5, Defense: 4},
	{ID: "liubei", Name: "Liu Bei", LocalName: "유비", Type: GeneralCard, Faction: Shu, Rarity: Legendary, Cost: 1, Attack: 4, Defense: 5},
	{ID: "guanyu", Name: "Guan Yu", LocalName: "관우", Type: GeneralCard, Faction: Shu, Rarity: Legendary, Cost: 1, Attack: 6, Defense: 4},
	{ID: "zhangfei", Name: "Zhang Fei", LocalName: "장비", Type: GeneralCard, Faction: Shu, Rarity: Rare, Cost: 1, Attack: 6, Defense: 3},
	{ID: "zhaoyun", Name: "Zhao Yun", LocalName: "조운", Type: GeneralCard, Faction: Shu, Rarity: Rare, Cost: 1, Attack: 5, Defense: 5},
	{ID: "machao", Name: "Ma Chao", LocalName: "마초", Type: GeneralCard, Faction: Shu, Rarity: Rare, Cost: 1, Attack: 6, Defense: 3},
	{ID: "huangzhong", Name: "Huang Zhong", LocalName: "황충", Type: GeneralCard, Faction: Shu, Rarity: Common, Cost: 1, Attack: 5, Defense: 3},
	{ID: "weiyan", Name: "Wei Yan", LocalName: "위연", Type: GeneralCard, Faction: Shu, Rarity: Common, Cost: 1, Attack: 4, Defense: 3},
	{ID: "sunquan", Name: "Sun Quan", LocalName: "손권", Type: GeneralCard, Faction: Wu, Rarity: Legendary, Cost: 1, Attack: 4, Defense: 5},
	{ID: "sunce", Name: "Sun Ce", LocalName: "손책", Type: GeneralCard, Faction: Wu, Rarity: Rare, Cost: 1, Attack: 5, Defense: 3},
	{ID: "zhouyu", Name: "Zhou Yu", LocalName: "주유", Type: GeneralCard, Faction: Wu, Rarity: Rare, Cost: 1, Attack: 4, Defense: 4},
	{ID: "taishici", Name: "Taishi Ci", LocalName: "태사자", Type: GeneralCard, Faction: Wu, Rarity: Common, Cost: 1, Attack: 4, Defense: 3},
	{ID: "ganning", Name: "Gan Ning", LocalName: "감녕", Type: GeneralCard, Faction: Wu, Rarity: Common, Cost: 1, Attack: 4, Defense: 3},
	{ID: "lubu", Name: "Lu Bu", LocalName: "여포", Type: GeneralCard, Faction: Neutral, Rarity: Legendary, Cost: 1, Attack: 7, Defense: 2},
	{ID: "footman", Name: "Garrison Troops", LocalName: "수비병", Type: GeneralCard, Faction: Neutral, Rarity: Common, Cost: 1, Attack: 2, Defense: 2, Quantity: 4},
	{ID: "lancer", Name: "Lancer Corps", LocalName: "창기병", Type: GeneralCard, Faction: Neutral, Rarity: Common, Cost: 1, Attack: 3, Defense: 2, Quantity: 3},
}

var strategies = []Card{
	{ID: "fire-attack", Name: "Fire Attack", LocalName: "화공", Type: StrategyCard, Faction: Neutral, Rarity: Common, Cost: 1, Effect: Burn, Value: 2},
	{ID: "conflagration", Name: "Conflagration", LocalName: "대화공", Type: StrategyCard, Faction: Neutral, Rarity: Rare, Cost: 1, Effect: Burn, Value: 3},
	{ID: "ambush", Name: "Ambush", LocalName: "매복", Type: StrategyCard, Faction: Neutral, Rarity: Common, Cost: 1, Effect: Ambush, Value: 2},
	{ID: "siege-engines", Name: "Siege Engines", LocalName: "공성병기", Type: StrategyCard, Faction: Neutral, Rarity: Rare, Cost: 1, Effect: Siege, Value: 3},
	{ID: "reinforcements", Name: "Reinforcements", LocalName: "증원", Type: StrategyCard, Faction: Neutral, Rarity: Common, Cost: 0, Effect: Reinforce, Value: 2},
	{ID: "iron-wall", Name: "Iron Wall", LocalName: "철벽", Type: StrategyCard, Faction: Neutral, Rarity: Rare, Cost: 0, Effect: Reinforce, Value: 3},
}

var resources = []Card{
	{ID: "grain", Name: "Grain Stores", LocalName: "군량", Type: ResourceCard, Faction: Neutral, Rarity: Common, Cost: 0, Value: 2},
	{ID: "conscription", Name: "Conscription", LocalName: "징병", Type: ResourceCard, Faction: Neutral, Rarity: Common, Cost: 1, Value: 3, Bonus: Draw1},
	{ID: "war-horses", Name: "War Horses", LocalName: "전마", Type: ResourceCard, Faction: Neutral, Rarity: Rare, Cost: 1, Value: 2, Bonus: AttackBoost},
	{ID: "forged-steel", Name: "Forged Steel", LocalName: "단철", Type: ResourceCard, Faction: Neutral, Rarity: Common, Cost: 0, Value: 1, Bonus: AttackBoostSmall},
	{ID: "fortification", Name: "Fortification", LocalName: "축성", Type: ResourceCard, Faction: Neutral, Rarity: Common, Cost: 1, Value: 1, Bonus: TerritoryDefense},
}

var events = []Card{
	{ID: "heavens-fortune", Name: "Heaven's Fortune", LocalName: "천운", Type: EventCard, Faction: Neutral, Rarity: Rare, Cost: 0, EventKind: Draw3, EventType: Fortune},
	{ID: "tempest", Name: "Tempest", LocalName: "폭풍우", Type: EventCard, Faction: Neutral, Rarity: Common, Cost: 0, EventKind: AttackDebuff, EventType: Weather, Duration: 1, Global: true, Value: 2},
	{ID: "plague", Name: "Plague", LocalName: "역병", Type: EventCard, Faction: Neutral, Rarity: Rare, Cost: 0, EventKind: DiscardAll1, EventType: Rebellion},
	{ID: "yellow-turbans", Name: "Yellow Turbans", LocalName: "황건적", Type: EventCard, Faction: Neutral, Rarity: Common, Cost: 0, EventKind: BlockNeutral, EventType: Rebellion, Duration: 2, Global: true},
	{ID: "armistice", Name: "Armistice", LocalName: "휴전", Type: EventCard, Faction: Neutral, Rarity: Rare, Cost: 0, EventKind: BlockAttack, EventType: Diplomacy, Duration: 1, Global: true},
	{ID: "clear-skies", Name: "Clear Skies", LocalName: "청명", Type: EventCard, Faction: Neutral, Rarity: Common, Cost: 0, EventKind: AttackBuff, EventType: Weather, Duration: 1, Value: 1},
}

var tacticians = []Card{
	{ID: "zhugeliang", Name: "Zhuge Liang", LocalName: "제갈량", Type: TacticianCard, Faction: Shu, Rarity: Legendary, Cost: 1, Tactics: 3},
	{ID: "simayi", Name: "Sima Yi", LocalName: "사마의", Type: TacticianCard, Faction: Wei, Rarity: Rare, Cost: 1, Tactics: 2},
	{ID: "pangtong", Name: "Pang Tong", LocalName: "방통", Type: TacticianCard, Faction: Shu, Rarity: Rare, Cost: 1, Tactics: 2},
}

// CatalogCards returns every card definition expanded to its deck quantity.
func CatalogCards() []Card {
	var out []Card
	for _, c := range generals {
		q := c.Quantity
		if q == 0 {
			q = 1
		}
		for i := 0; i < q; i++ {
			out = append(out, c)
		}
	}
	nonGeneral := make([]Card, 0, len(strategies)+len(resources)+len(events)+len(tacticians))
	nonGeneral = append(nonGeneral, strategies...)
	nonGeneral = append(nonGeneral, resources...)
	nonGeneral = append(nonGeneral, events...)
	nonGeneral = append(nonGeneral, tacticians...)
	for i := 0; i < nonGeneralMultiplier; i++ {
		for _, c := range nonGeneral {
			q := c.Quantity
			if q == 0 {
				q = 1
			}
			for j := 0; j < q; j++ {
				out = append(out, c)
			}
		}
	}
	return out
}
