package gc

import "math"

// CStrike15Welcome is the game specific payload carried inside the welcome
// message for CS:GO.
type CStrike15Welcome struct {
	StoreItemHash           uint32
	TimePlayedConsecutively uint32
	TimeFirstPlayed         uint32
	LastTimePlayed          uint32
}

func (m *CStrike15Welcome) Marshal() ([]byte, error) {
	var e enc
	e.uint32(5, m.StoreItemHash)
	e.uint32(6, m.TimePlayedConsecutively)
	e.uint32(7, m.TimeFirstPlayed)
	e.uint32(8, m.LastTimePlayed)
	return e.buf, nil
}

func (m *CStrike15Welcome) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 5:
			m.StoreItemHash = d.uint32()
		case 6:
			m.TimePlayedConsecutively = d.uint32()
		case 7:
			m.TimeFirstPlayed = d.uint32()
		case 8:
			m.LastTimePlayed = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchmakingClient2GCHello requests the matchmaking profile of the current
// account.
type MatchmakingClient2GCHello struct{}

func (m *MatchmakingClient2GCHello) Marshal() ([]byte, error) { return nil, nil }

func (m *MatchmakingClient2GCHello) Unmarshal(data []byte) error { return nil }

// PlayerRankingInfo is the skill group standing of one account for one rank
// type.
type PlayerRankingInfo struct {
	AccountId  uint32
	RankId     uint32
	Wins       uint32
	RankChange float32
	RankTypeId uint32
}

func (m *PlayerRankingInfo) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AccountId)
	e.uint32(2, m.RankId)
	e.uint32(3, m.Wins)
	e.float(4, m.RankChange)
	e.uint32(6, m.RankTypeId)
	return e.buf, nil
}

func (m *PlayerRankingInfo) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AccountId = d.uint32()
		case 2:
			m.RankId = d.uint32()
		case 3:
			m.Wins = d.uint32()
		case 4:
			m.RankChange = d.float()
		case 6:
			m.RankTypeId = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// PlayerCommendationInfo counts the commendations an account has received.
type PlayerCommendationInfo struct {
	CmdFriendly uint32
	CmdTeaching uint32
	CmdLeader   uint32
}

func (m *PlayerCommendationInfo) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.CmdFriendly)
	e.uint32(2, m.CmdTeaching)
	e.uint32(4, m.CmdLeader)
	return e.buf, nil
}

func (m *PlayerCommendationInfo) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.CmdFriendly = d.uint32()
		case 2:
			m.CmdTeaching = d.uint32()
		case 4:
			m.CmdLeader = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchmakingGC2ClientHello is the matchmaking profile of an account. The GC
// sends it in response to MatchmakingClient2GCHello and embeds it in players
// profile responses.
type MatchmakingGC2ClientHello struct {
	AccountId      uint32
	PenaltySeconds uint32
	PenaltyReason  uint32
	VacBanned      int32
	Ranking        *PlayerRankingInfo
	Commendation   *PlayerCommendationInfo
	PlayerLevel    uint32
	PlayerCurXp    uint32
	XpBonusFlags   EXPBonusFlag
}

func (m *MatchmakingGC2ClientHello) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AccountId)
	e.uint32(4, m.PenaltySeconds)
	e.uint32(5, m.PenaltyReason)
	e.int32(6, m.VacBanned)
	if m.Ranking != nil {
		if err := e.msg(7, m.Ranking); err != nil {
			return nil, err
		}
	}
	if m.Commendation != nil {
		if err := e.msg(8, m.Commendation); err != nil {
			return nil, err
		}
	}
	e.uint32(17, m.PlayerLevel)
	e.uint32(18, m.PlayerCurXp)
	e.uint32(19, uint32(m.XpBonusFlags))
	return e.buf, nil
}

func (m *MatchmakingGC2ClientHello) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AccountId = d.uint32()
		case 4:
			m.PenaltySeconds = d.uint32()
		case 5:
			m.PenaltyReason = d.uint32()
		case 6:
			m.VacBanned = d.int32()
		case 7:
			m.Ranking = new(PlayerRankingInfo)
			d.msg(m.Ranking)
		case 8:
			m.Commendation = new(PlayerCommendationInfo)
			d.msg(m.Commendation)
		case 17:
			m.PlayerLevel = d.uint32()
		case 18:
			m.PlayerCurXp = d.uint32()
		case 19:
			m.XpBonusFlags = EXPBonusFlag(d.uint32())
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchListRequestCurrentLiveGames requests the list of currently watchable
// live games.
type MatchListRequestCurrentLiveGames struct{}

func (m *MatchListRequestCurrentLiveGames) Marshal() ([]byte, error) { return nil, nil }

func (m *MatchListRequestCurrentLiveGames) Unmarshal(data []byte) error { return nil }

// MatchListRequestLiveGameForUser requests the live game a user is playing
// in.
type MatchListRequestLiveGameForUser struct {
	AccountId uint32
}

func (m *MatchListRequestLiveGameForUser) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AccountId)
	return e.buf, nil
}

func (m *MatchListRequestLiveGameForUser) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AccountId = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchListRequestRecentUserGames requests the recent competitive matches of
// an account.
type MatchListRequestRecentUserGames struct {
	AccountId uint32
}

func (m *MatchListRequestRecentUserGames) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AccountId)
	return e.buf, nil
}

func (m *MatchListRequestRecentUserGames) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AccountId = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchListRequestFullGameInfo requests the full details of one match. The
// three ids come from a match share code.
type MatchListRequestFullGameInfo struct {
	MatchId   uint64
	OutcomeId uint64
	Token     uint32
}

func (m *MatchListRequestFullGameInfo) Marshal() ([]byte, error) {
	var e enc
	e.uint64(1, m.MatchId)
	e.uint64(2, m.OutcomeId)
	e.uint32(3, m.Token)
	return e.buf, nil
}

func (m *MatchListRequestFullGameInfo) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.MatchId = d.uint64()
		case 2:
			m.OutcomeId = d.uint64()
		case 3:
			m.Token = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// WatchableMatchInfo describes how to spectate a match over GOTV.
type WatchableMatchInfo struct {
	ServerIp            uint32
	TvPort              uint32
	TvSpectators        uint32
	TvTime              uint32
	TvWatchPassword     []byte
	ClDecryptdataKey    uint64
	ClDecryptdataKeyPub uint64
	GameType            uint32
	GameMapgroup        string
	GameMap             string
	ServerId            uint64
}

func (m *WatchableMatchInfo) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.ServerIp)
	e.uint32(2, m.TvPort)
	e.uint32(3, m.TvSpectators)
	e.uint32(4, m.TvTime)
	e.bytes(5, m.TvWatchPassword)
	e.uint64(6, m.ClDecryptdataKey)
	e.uint64(7, m.ClDecryptdataKeyPub)
	e.uint32(8, m.GameType)
	e.str(9, m.GameMapgroup)
	e.str(10, m.GameMap)
	e.uint64(11, m.ServerId)
	return e.buf, nil
}

func (m *WatchableMatchInfo) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.ServerIp = d.uint32()
		case 2:
			m.TvPort = d.uint32()
		case 3:
			m.TvSpectators = d.uint32()
		case 4:
			m.TvTime = d.uint32()
		case 5:
			m.TvWatchPassword = d.bytes()
		case 6:
			m.ClDecryptdataKey = d.uint64()
		case 7:
			m.ClDecryptdataKeyPub = d.uint64()
		case 8:
			m.GameType = d.uint32()
		case 9:
			m.GameMapgroup = d.str()
		case 10:
			m.GameMap = d.str()
		case 11:
			m.ServerId = d.uint64()
		default:
			d.skip()
		}
	}
	return d.err()
}

// RoundStats is the per round scoreboard of a match. The per player slices
// are ordered by scoreboard position.
type RoundStats struct {
	ReservationId    uint64
	Map              string
	Round            int32
	Kills            []int32
	Assists          []int32
	Deaths           []int32
	Scores           []int32
	Pings            []int32
	RoundResult      int32
	MatchResult      int32
	TeamScores       []int32
	ReservationStage int32
	MatchDuration    int32
}

func (m *RoundStats) Marshal() ([]byte, error) {
	var e enc
	e.uint64(1, m.ReservationId)
	e.str(3, m.Map)
	e.int32(4, m.Round)
	for _, v := range m.Kills {
		e.int32Elem(5, v)
	}
	for _, v := range m.Assists {
		e.int32Elem(6, v)
	}
	for _, v := range m.Deaths {
		e.int32Elem(7, v)
	}
	for _, v := range m.Scores {
		e.int32Elem(8, v)
	}
	for _, v := range m.Pings {
		e.int32Elem(9, v)
	}
	e.int32(10, m.RoundResult)
	e.int32(11, m.MatchResult)
	for _, v := range m.TeamScores {
		e.int32Elem(12, v)
	}
	e.int32(14, m.ReservationStage)
	e.int32(15, m.MatchDuration)
	return e.buf, nil
}

func (m *RoundStats) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.ReservationId = d.uint64()
		case 3:
			m.Map = d.str()
		case 4:
			m.Round = d.int32()
		case 5:
			m.Kills = d.int32s(m.Kills)
		case 6:
			m.Assists = d.int32s(m.Assists)
		case 7:
			m.Deaths = d.int32s(m.Deaths)
		case 8:
			m.Scores = d.int32s(m.Scores)
		case 9:
			m.Pings = d.int32s(m.Pings)
		case 10:
			m.RoundResult = d.int32()
		case 11:
			m.MatchResult = d.int32()
		case 12:
			m.TeamScores = d.int32s(m.TeamScores)
		case 14:
			m.ReservationStage = d.int32()
		case 15:
			m.MatchDuration = d.int32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchInfo is one match in a match list response.
type MatchInfo struct {
	MatchId       uint64
	MatchTime     uint32
	WatchableInfo *WatchableMatchInfo
	RoundStats    []RoundStats
}

func (m *MatchInfo) Marshal() ([]byte, error) {
	var e enc
	e.uint64(1, m.MatchId)
	e.uint32(2, m.MatchTime)
	if m.WatchableInfo != nil {
		if err := e.msg(3, m.WatchableInfo); err != nil {
			return nil, err
		}
	}
	for i := range m.RoundStats {
		if err := e.msg(5, &m.RoundStats[i]); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *MatchInfo) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.MatchId = d.uint64()
		case 2:
			m.MatchTime = d.uint32()
		case 3:
			m.WatchableInfo = new(WatchableMatchInfo)
			d.msg(m.WatchableInfo)
		case 5:
			var r RoundStats
			d.msg(&r)
			m.RoundStats = append(m.RoundStats, r)
		default:
			d.skip()
		}
	}
	return d.err()
}

// MatchList answers all match list requests. MsgRequestId names the request
// message the list responds to.
type MatchList struct {
	MsgRequestId EMsg
	AccountId    uint32
	ServerTime   uint32
	Matches      []MatchInfo
}

func (m *MatchList) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, uint32(m.MsgRequestId))
	e.uint32(2, m.AccountId)
	e.uint32(3, m.ServerTime)
	for i := range m.Matches {
		if err := e.msg(4, &m.Matches[i]); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *MatchList) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.MsgRequestId = EMsg(d.uint32())
		case 2:
			m.AccountId = d.uint32()
		case 3:
			m.ServerTime = d.uint32()
		case 4:
			var mi MatchInfo
			d.msg(&mi)
			m.Matches = append(m.Matches, mi)
		default:
			d.skip()
		}
	}
	return d.err()
}

// ClientRequestWatchInfoFriends requests watch info for the given accounts
// or a specific match.
type ClientRequestWatchInfoFriends struct {
	RequestId  uint32
	AccountIds []uint32
	ServerId   uint64
	MatchId    uint64
}

func (m *ClientRequestWatchInfoFriends) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.RequestId)
	for _, id := range m.AccountIds {
		e.uint32Elem(2, id)
	}
	e.uint64(3, m.ServerId)
	e.uint64(4, m.MatchId)
	return e.buf, nil
}

func (m *ClientRequestWatchInfoFriends) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.RequestId = d.uint32()
		case 2:
			m.AccountIds = d.uint32s(m.AccountIds)
		case 3:
			m.ServerId = d.uint64()
		case 4:
			m.MatchId = d.uint64()
		default:
			d.skip()
		}
	}
	return d.err()
}

// WatchInfoUsers is the GC response carrying watchable match info for the
// requested accounts.
type WatchInfoUsers struct {
	RequestId           uint32
	AccountIds          []uint32
	WatchableMatchInfos []WatchableMatchInfo
}

func (m *WatchInfoUsers) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.RequestId)
	for _, id := range m.AccountIds {
		e.uint32Elem(2, id)
	}
	for i := range m.WatchableMatchInfos {
		if err := e.msg(3, &m.WatchableMatchInfos[i]); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *WatchInfoUsers) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.RequestId = d.uint32()
		case 2:
			m.AccountIds = d.uint32s(m.AccountIds)
		case 3:
			var w WatchableMatchInfo
			d.msg(&w)
			m.WatchableMatchInfos = append(m.WatchableMatchInfos, w)
		default:
			d.skip()
		}
	}
	return d.err()
}

// ClientRequestPlayersProfile requests the matchmaking profile of another
// account.
type ClientRequestPlayersProfile struct {
	AccountId    uint32
	RequestLevel uint32
}

func (m *ClientRequestPlayersProfile) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AccountId)
	e.uint32(2, m.RequestLevel)
	return e.buf, nil
}

func (m *ClientRequestPlayersProfile) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AccountId = d.uint32()
		case 2:
			m.RequestLevel = d.uint32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// PlayersProfile is the response to a players profile request.
type PlayersProfile struct {
	RequestId       uint32
	AccountProfiles []MatchmakingGC2ClientHello
}

func (m *PlayersProfile) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.RequestId)
	for i := range m.AccountProfiles {
		if err := e.msg(2, &m.AccountProfiles[i]); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *PlayersProfile) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.RequestId = d.uint32()
		case 2:
			var p MatchmakingGC2ClientHello
			d.msg(&p)
			m.AccountProfiles = append(m.AccountProfiles, p)
		default:
			d.skip()
		}
	}
	return d.err()
}

// EconPreviewRequest asks for the item behind an inspect link. The four
// parameters are the S, A, D and M values encoded in the link.
type EconPreviewRequest struct {
	ParamS uint64
	ParamA uint64
	ParamD uint64
	ParamM uint64
}

func (m *EconPreviewRequest) Marshal() ([]byte, error) {
	var e enc
	e.uint64(1, m.ParamS)
	e.uint64(2, m.ParamA)
	e.uint64(3, m.ParamD)
	e.uint64(4, m.ParamM)
	return e.buf, nil
}

func (m *EconPreviewRequest) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.ParamS = d.uint64()
		case 2:
			m.ParamA = d.uint64()
		case 3:
			m.ParamD = d.uint64()
		case 4:
			m.ParamM = d.uint64()
		default:
			d.skip()
		}
	}
	return d.err()
}

// EconItemSticker is one sticker applied to an item.
type EconItemSticker struct {
	Slot      uint32
	StickerId uint32
	Wear      float32
	Scale     float32
	Rotation  float32
}

func (m *EconItemSticker) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.Slot)
	e.uint32(2, m.StickerId)
	e.float(3, m.Wear)
	e.float(4, m.Scale)
	e.float(5, m.Rotation)
	return e.buf, nil
}

func (m *EconItemSticker) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Slot = d.uint32()
		case 2:
			m.StickerId = d.uint32()
		case 3:
			m.Wear = d.float()
		case 4:
			m.Scale = d.float()
		case 5:
			m.Rotation = d.float()
		default:
			d.skip()
		}
	}
	return d.err()
}

// EconItemPreview describes an item from an inspect link. PaintWear holds
// the bit pattern of the wear float, see Wear.
type EconItemPreview struct {
	AccountId          uint32
	ItemId             uint64
	DefIndex           uint32
	PaintIndex         uint32
	Rarity             uint32
	Quality            uint32
	PaintWear          uint32
	PaintSeed          uint32
	KillEaterScoreType uint32
	KillEaterValue     uint32
	CustomName         string
	Stickers           []EconItemSticker
	Inventory          uint32
	Origin             uint32
	QuestId            uint32
	DropReason         uint32
	MusicIndex         uint32
	EntIndex           int32
}

// Wear returns the paint wear as the float value it encodes.
func (m *EconItemPreview) Wear() float32 {
	return math.Float32frombits(m.PaintWear)
}

func (m *EconItemPreview) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.AccountId)
	e.uint64(2, m.ItemId)
	e.uint32(3, m.DefIndex)
	e.uint32(4, m.PaintIndex)
	e.uint32(5, m.Rarity)
	e.uint32(6, m.Quality)
	e.uint32(7, m.PaintWear)
	e.uint32(8, m.PaintSeed)
	e.uint32(9, m.KillEaterScoreType)
	e.uint32(10, m.KillEaterValue)
	e.str(11, m.CustomName)
	for i := range m.Stickers {
		if err := e.msg(12, &m.Stickers[i]); err != nil {
			return nil, err
		}
	}
	e.uint32(13, m.Inventory)
	e.uint32(14, m.Origin)
	e.uint32(15, m.QuestId)
	e.uint32(16, m.DropReason)
	e.uint32(17, m.MusicIndex)
	e.int32(18, m.EntIndex)
	return e.buf, nil
}

func (m *EconItemPreview) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.AccountId = d.uint32()
		case 2:
			m.ItemId = d.uint64()
		case 3:
			m.DefIndex = d.uint32()
		case 4:
			m.PaintIndex = d.uint32()
		case 5:
			m.Rarity = d.uint32()
		case 6:
			m.Quality = d.uint32()
		case 7:
			m.PaintWear = d.uint32()
		case 8:
			m.PaintSeed = d.uint32()
		case 9:
			m.KillEaterScoreType = d.uint32()
		case 10:
			m.KillEaterValue = d.uint32()
		case 11:
			m.CustomName = d.str()
		case 12:
			var s EconItemSticker
			d.msg(&s)
			m.Stickers = append(m.Stickers, s)
		case 13:
			m.Inventory = d.uint32()
		case 14:
			m.Origin = d.uint32()
		case 15:
			m.QuestId = d.uint32()
		case 16:
			m.DropReason = d.uint32()
		case 17:
			m.MusicIndex = d.uint32()
		case 18:
			m.EntIndex = d.int32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// EconPreviewResponse carries the item preview data block for an inspect
// link request.
type EconPreviewResponse struct {
	ItemInfo *EconItemPreview
}

func (m *EconPreviewResponse) Marshal() ([]byte, error) {
	var e enc
	if m.ItemInfo != nil {
		if err := e.msg(1, m.ItemInfo); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *EconPreviewResponse) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.ItemInfo = new(EconItemPreview)
			d.msg(m.ItemInfo)
		default:
			d.skip()
		}
	}
	return d.err()
}

// ClientGCRankUpdate is pushed by the GC when skill group standings change.
type ClientGCRankUpdate struct {
	Rankings []PlayerRankingInfo
}

func (m *ClientGCRankUpdate) Marshal() ([]byte, error) {
	var e enc
	for i := range m.Rankings {
		if err := e.msg(1, &m.Rankings[i]); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *ClientGCRankUpdate) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			var r PlayerRankingInfo
			d.msg(&r)
			m.Rankings = append(m.Rankings, r)
		default:
			d.skip()
		}
	}
	return d.err()
}
