package gc

// EconItemAttribute is one attribute on an inventory item. Value holds the
// raw attribute bits, ValueBytes the newer byte encoded form.
type EconItemAttribute struct {
	DefIndex   uint32
	Value      uint32
	ValueBytes []byte
}

func (m *EconItemAttribute) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.DefIndex)
	e.uint32(2, m.Value)
	e.bytes(3, m.ValueBytes)
	return e.buf, nil
}

func (m *EconItemAttribute) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.DefIndex = d.uint32()
		case 2:
			m.Value = d.uint32()
		case 3:
			m.ValueBytes = d.bytes()
		default:
			d.skip()
		}
	}
	return d.err()
}

// EconItemEquipped records the loadout slot an item is equipped in for one
// character class.
type EconItemEquipped struct {
	NewClass uint32
	NewSlot  uint32
}

func (m *EconItemEquipped) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.NewClass)
	e.uint32(2, m.NewSlot)
	return e.buf, nil
}

func (m *EconItemEquipped) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.NewClass = d.uint32()
		case 2:
			m.NewSlot = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// EconItem is an item in the account inventory, shared object type
// SOTypeEconItem. Items are keyed by Id in the cache.
type EconItem struct {
	Id            uint64
	AccountId     uint32
	Inventory     uint32
	DefIndex      uint32
	Quantity      uint32
	Level         uint32
	Quality       uint32
	Flags         uint32
	Origin        uint32
	CustomName    string
	CustomDesc    string
	Attributes    []EconItemAttribute
	InteriorItem  *EconItem
	InUse         bool
	Style         uint32
	OriginalId    uint64
	EquippedState []EconItemEquipped
	Rarity        uint32
}

func (m *EconItem) Marshal() ([]byte, error) {
	var e enc
	e.uint64(1, m.Id)
	e.uint32(2, m.AccountId)
	e.uint32(3, m.Inventory)
	e.uint32(4, m.DefIndex)
	e.uint32(5, m.Quantity)
	e.uint32(6, m.Level)
	e.uint32(7, m.Quality)
	e.uint32(8, m.Flags)
	e.uint32(9, m.Origin)
	e.str(10, m.CustomName)
	e.str(11, m.CustomDesc)
	for i := range m.Attributes {
		if err := e.msg(12, &m.Attributes[i]); err != nil {
			return nil, err
		}
	}
	if m.InteriorItem != nil {
		if err := e.msg(13, m.InteriorItem); err != nil {
			return nil, err
		}
	}
	e.boolean(14, m.InUse)
	e.uint32(15, m.Style)
	e.uint64(16, m.OriginalId)
	for i := range m.EquippedState {
		if err := e.msg(18, &m.EquippedState[i]); err != nil {
			return nil, err
		}
	}
	e.uint32(19, m.Rarity)
	return e.buf, nil
}

func (m *EconItem) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Id = d.uint64()
		case 2:
			m.AccountId = d.uint32()
		case 3:
			m.Inventory = d.uint32()
		case 4:
			m.DefIndex = d.uint32()
		case 5:
			m.Quantity = d.uint32()
		case 6:
			m.Level = d.uint32()
		case 7:
			m.Quality = d.uint32()
		case 8:
			m.Flags = d.uint32()
		case 9:
			m.Origin = d.uint32()
		case 10:
			m.CustomName = d.str()
		case 11:
			m.CustomDesc = d.str()
		case 12:
			var a EconItemAttribute
			d.msg(&a)
			m.Attributes = append(m.Attributes, a)
		case 13:
			m.InteriorItem = new(EconItem)
			d.msg(m.InteriorItem)
		case 14:
			m.InUse = d.boolean()
		case 15:
			m.Style = d.uint32()
		case 16:
			m.OriginalId = d.uint64()
		case 18:
			var eq EconItemEquipped
			d.msg(&eq)
			m.EquippedState = append(m.EquippedState, eq)
		case 19:
			m.Rarity = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// GameAccountClient is the account wide game state singleton, shared object
// type SOTypeGameAccountClient.
type GameAccountClient struct {
	AdditionalBackpackSlots uint32
	BonusXpTimestampRefresh uint32
	BonusXpUsedflags        uint32
	ElevatedState           uint32
	ElevatedTimestamp       uint32
}

func (m *GameAccountClient) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AdditionalBackpackSlots)
	e.fixed32(12, m.BonusXpTimestampRefresh)
	e.uint32(13, m.BonusXpUsedflags)
	e.uint32(14, m.ElevatedState)
	e.uint32(15, m.ElevatedTimestamp)
	return e.buf, nil
}

func (m *GameAccountClient) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AdditionalBackpackSlots = d.uint32()
		case 12:
			m.BonusXpTimestampRefresh = d.fixed32()
		case 13:
			m.BonusXpUsedflags = d.uint32()
		case 14:
			m.ElevatedState = d.uint32()
		case 15:
			m.ElevatedTimestamp = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// PersonaDataPublic is the public profile singleton, shared object type
// SOTypePersonaDataPublic.
type PersonaDataPublic struct {
	PlayerLevel   int32
	Commendation  *PlayerCommendationInfo
	ElevatedState bool
}

func (m *PersonaDataPublic) Marshal() ([]byte, error) {
	var e enc
	e.int32(1, m.PlayerLevel)
	if m.Commendation != nil {
		if err := e.msg(2, m.Commendation); err != nil {
			return nil, err
		}
	}
	e.boolean(3, m.ElevatedState)
	return e.buf, nil
}

func (m *PersonaDataPublic) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.PlayerLevel = d.int32()
		case 2:
			m.Commendation = new(PlayerCommendationInfo)
			d.msg(m.Commendation)
		case 3:
			m.ElevatedState = d.boolean()
		default:
			d.skip()
		}
	}
	return d.err()
}
