package csgo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gckit/go-csgo/csgo/gc"
	"github.com/gckit/go-csgo/csgo/sharecode"
)

// WatchInfoFriendsRequest describes a watch info query for accounts that
// are currently playing. At least one of the id fields must be set.
type WatchInfoFriendsRequest struct {
	// AccountIds are the accounts to look up.
	AccountIds []uint32
	// RequestId is echoed in the response, it defaults to 1.
	RequestId uint32
	// ServerId narrows the lookup to one game server.
	ServerId uint64
	// MatchId narrows the lookup to one live match.
	MatchId uint64
}

// RequestMatchmakingStats asks the GC for the matchmaking profile of the
// own account. The response arrives as a matchmaking_stats event.
func (c *Client) RequestMatchmakingStats() error {
	return c.SendMessage(gc.EMsgMatchmakingClient2GCHello, &gc.MatchmakingClient2GCHello{})
}

// RequestCurrentLiveGames asks for the list of featured live games. The
// response arrives as a current_live_games event.
func (c *Client) RequestCurrentLiveGames() error {
	return c.SendMessage(gc.EMsgMatchListRequestCurrentLiveGames,
		&gc.MatchListRequestCurrentLiveGames{})
}

// RequestLiveGameForUser asks for the live game the given account plays
// in. The response arrives as a live_game_for_user event.
//
// Deprecated: the GC no longer answers this request for most accounts,
// use RequestWatchInfoFriends instead.
func (c *Client) RequestLiveGameForUser(accountId uint32) error {
	return c.SendMessage(gc.EMsgMatchListRequestLiveGameForUser,
		&gc.MatchListRequestLiveGameForUser{AccountId: accountId})
}

// RequestRecentUserGames asks for the recent competitive matches of the
// given account. The response arrives as a recent_user_games event.
func (c *Client) RequestRecentUserGames(accountId uint32) error {
	return c.SendMessage(gc.EMsgMatchListRequestRecentUserGames,
		&gc.MatchListRequestRecentUserGames{AccountId: accountId})
}

// RequestFullMatchInfo asks for the full details of one finished match,
// including the download URLs of the demo. The ids are the ones a match
// share code decodes to. The response arrives as a full_match_info event.
func (c *Client) RequestFullMatchInfo(matchId, outcomeId uint64, token uint32) error {
	return c.SendMessage(gc.EMsgMatchListRequestFullGameInfo,
		&gc.MatchListRequestFullGameInfo{
			MatchId:   matchId,
			OutcomeId: outcomeId,
			Token:     token,
		})
}

// RequestMatchInfoForShareCode decodes a match share code and requests
// the full details of the match it names.
func (c *Client) RequestMatchInfoForShareCode(code string) error {
	sc, err := sharecode.Decode(code)
	if err != nil {
		return fmt.Errorf("failed to decode share code: %w", err)
	}
	return c.RequestFullMatchInfo(sc.MatchId, sc.OutcomeId, sc.Token)
}

// RequestWatchInfoFriends asks for watch info on the given accounts,
// server or match. The response arrives as a watch_info event.
func (c *Client) RequestWatchInfoFriends(req WatchInfoFriendsRequest) error {
	if req.RequestId == 0 {
		req.RequestId = 1
	}
	return c.SendMessage(gc.EMsgClientRequestWatchInfoFriends,
		&gc.ClientRequestWatchInfoFriends{
			RequestId:  req.RequestId,
			AccountIds: req.AccountIds,
			ServerId:   req.ServerId,
			MatchId:    req.MatchId,
		})
}

func (c *Client) registerMatchEvents() {
	c.OnPacket(gc.EMsgMatchmakingGC2ClientHello, func(_ *gc.Packet, decoded gc.Message) {
		c.emit(EventMatchmakingStats, decoded.(*gc.MatchmakingGC2ClientHello))
	})
	c.OnPacket(gc.EMsgMatchList, func(_ *gc.Packet, decoded gc.Message) {
		list := decoded.(*gc.MatchList)
		switch list.MsgRequestId {
		case gc.EMsgMatchListRequestCurrentLiveGames:
			c.emit(EventCurrentLiveGames, list)
		case gc.EMsgMatchListRequestLiveGameForUser:
			c.emit(EventLiveGameForUser, list)
		case gc.EMsgMatchListRequestRecentUserGames:
			c.emit(EventRecentUserGames, list)
		case gc.EMsgMatchListRequestFullGameInfo:
			c.emit(EventFullMatchInfo, list)
		default:
			c.log.Debug("match list for unknown request",
				zap.Stringer("request", list.MsgRequestId))
		}
	})
	c.OnPacket(gc.EMsgWatchInfoUsers, func(_ *gc.Packet, decoded gc.Message) {
		c.emit(EventWatchInfo, decoded.(*gc.WatchInfoUsers))
	})
}
