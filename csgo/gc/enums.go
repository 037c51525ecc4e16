package gc

import "strconv"

// ConnectionStatus describes the state of the GC session as reported by the
// Game Coordinator.
type ConnectionStatus uint32

const (
	StatusHaveSession           ConnectionStatus = 0
	StatusGCGoingDown           ConnectionStatus = 1
	StatusNoSession             ConnectionStatus = 2
	StatusNoSessionInLogonQueue ConnectionStatus = 3
	StatusNoSteam               ConnectionStatus = 4
)

var statusNames = map[ConnectionStatus]string{
	StatusHaveSession:           "HAVE_SESSION",
	StatusGCGoingDown:           "GC_GOING_DOWN",
	StatusNoSession:             "NO_SESSION",
	StatusNoSessionInLogonQueue: "NO_SESSION_IN_LOGON_QUEUE",
	StatusNoSteam:               "NO_STEAM",
}

func (s ConnectionStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "ConnectionStatus(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// LauncherType selects the launcher variant announced in the client hello.
// Perfect World is the Chinese CS:GO launcher and uses a separate hello
// message.
type LauncherType uint32

const (
	LauncherDefault      LauncherType = 0
	LauncherPerfectWorld LauncherType = 1
)

// SOIDTypeSteamId marks a shared object cache owner id as a steam id.
const SOIDTypeSteamId int32 = 1

// SOType identifies the type of a shared object in a GC cache.
type SOType int32

const (
	SOTypeEconItem                  SOType = 1
	SOTypePersonaDataPublic         SOType = 2
	SOTypeItemRecipe                SOType = 5
	SOTypeGameAccountClient         SOType = 7
	SOTypeItemDropRateBonus         SOType = 38
	SOTypeItemEventTicket           SOType = 40
	SOTypeAccountSeasonalOperation  SOType = 41
	SOTypeDefaultEquippedDefinition SOType = 43
	SOTypeCoupon                    SOType = 45
	SOTypeQuestProgress             SOType = 46
)

var soTypeNames = map[SOType]string{
	SOTypeEconItem:                  "EconItem",
	SOTypePersonaDataPublic:         "PersonaDataPublic",
	SOTypeItemRecipe:                "ItemRecipe",
	SOTypeGameAccountClient:         "GameAccountClient",
	SOTypeItemDropRateBonus:         "ItemDropRateBonus",
	SOTypeItemEventTicket:           "ItemEventTicket",
	SOTypeAccountSeasonalOperation:  "AccountSeasonalOperation",
	SOTypeDefaultEquippedDefinition: "DefaultEquippedDefinition",
	SOTypeCoupon:                    "Coupon",
	SOTypeQuestProgress:             "QuestProgress",
}

func (t SOType) String() string {
	if name, ok := soTypeNames[t]; ok {
		return name
	}
	return "SOType(" + strconv.FormatInt(int64(t), 10) + ")"
}

// EXPBonusFlag is a bit field describing XP bonuses and penalties on a
// matchmaking profile.
type EXPBonusFlag uint32

const (
	EXPBonusEarnedXpThisPeriod        EXPBonusFlag = 1 << 0
	EXPBonusFirstReward               EXPBonusFlag = 1 << 1
	EXPBonusMsgYourReportGotConvicted EXPBonusFlag = 1 << 2
	EXPBonusMsgYouPartiedWithCheaters EXPBonusFlag = 1 << 3
	EXPBonusPrestigeEarned            EXPBonusFlag = 1 << 4
	EXPBonusChinaGovernmentCert       EXPBonusFlag = 1 << 5
	EXPBonusOverwatchBonus            EXPBonusFlag = 1 << 28
	EXPBonusBoostConsumed             EXPBonusFlag = 1 << 29
	EXPBonusReducedGain               EXPBonusFlag = 1 << 30
)
