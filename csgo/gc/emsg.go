package gc

import "strconv"

// EMsg identifies the type of a Game Coordinator message.
type EMsg uint32

// Shared object messages. These are sent by the GC whenever objects in a
// subscribed cache are created, updated or destroyed.
const (
	EMsgSOCreate            EMsg = 21
	EMsgSOUpdate            EMsg = 22
	EMsgSODestroy           EMsg = 23
	EMsgSOCacheSubscribed   EMsg = 24
	EMsgSOCacheUnsubscribed EMsg = 25
	EMsgSOUpdateMultiple    EMsg = 26
)

// Base client messages, shared by all GC backed games.
const (
	EMsgClientWelcome          EMsg = 4004
	EMsgServerWelcome          EMsg = 4005
	EMsgClientHello            EMsg = 4006
	EMsgServerHello            EMsg = 4007
	EMsgClientConnectionStatus EMsg = 4009
	EMsgServerConnectionStatus EMsg = 4010
	EMsgClientHelloPW          EMsg = 4012
)

// CS:GO specific messages.
const (
	EMsgMatchmakingClient2GCHello        EMsg = 9109
	EMsgMatchmakingGC2ClientHello        EMsg = 9110
	EMsgWatchInfoUsers                   EMsg = 9126
	EMsgClientRequestPlayersProfile      EMsg = 9127
	EMsgPlayersProfile                   EMsg = 9128
	EMsgClientRequestWatchInfoFriends    EMsg = 9138
	EMsgMatchList                        EMsg = 9139
	EMsgMatchListRequestCurrentLiveGames EMsg = 9140
	EMsgMatchListRequestRecentUserGames  EMsg = 9141
	EMsgMatchListRequestFullGameInfo     EMsg = 9147
	EMsgMatchListRequestLiveGameForUser  EMsg = 9154
	EMsgClientEconPreviewRequest         EMsg = 9156
	EMsgClientEconPreviewResponse        EMsg = 9157
	EMsgClientGCRankUpdate               EMsg = 9194
)

var emsgNames = map[EMsg]string{
	EMsgSOCreate:                         "SOCreate",
	EMsgSOUpdate:                         "SOUpdate",
	EMsgSODestroy:                        "SODestroy",
	EMsgSOCacheSubscribed:                "SOCacheSubscribed",
	EMsgSOCacheUnsubscribed:              "SOCacheUnsubscribed",
	EMsgSOUpdateMultiple:                 "SOUpdateMultiple",
	EMsgClientWelcome:                    "ClientWelcome",
	EMsgServerWelcome:                    "ServerWelcome",
	EMsgClientHello:                      "ClientHello",
	EMsgServerHello:                      "ServerHello",
	EMsgClientConnectionStatus:           "ClientConnectionStatus",
	EMsgServerConnectionStatus:           "ServerConnectionStatus",
	EMsgClientHelloPW:                    "ClientHelloPW",
	EMsgMatchmakingClient2GCHello:        "MatchmakingClient2GCHello",
	EMsgMatchmakingGC2ClientHello:        "MatchmakingGC2ClientHello",
	EMsgWatchInfoUsers:                   "WatchInfoUsers",
	EMsgClientRequestPlayersProfile:      "ClientRequestPlayersProfile",
	EMsgPlayersProfile:                   "PlayersProfile",
	EMsgClientRequestWatchInfoFriends:    "ClientRequestWatchInfoFriends",
	EMsgMatchList:                        "MatchList",
	EMsgMatchListRequestCurrentLiveGames: "MatchListRequestCurrentLiveGames",
	EMsgMatchListRequestRecentUserGames:  "MatchListRequestRecentUserGames",
	EMsgMatchListRequestFullGameInfo:     "MatchListRequestFullGameInfo",
	EMsgMatchListRequestLiveGameForUser:  "MatchListRequestLiveGameForUser",
	EMsgClientEconPreviewRequest:         "ClientEconPreviewRequest",
	EMsgClientEconPreviewResponse:        "ClientEconPreviewResponse",
	EMsgClientGCRankUpdate:               "ClientGCRankUpdate",
}

func (e EMsg) String() string {
	if name, ok := emsgNames[e]; ok {
		return name
	}
	return "EMsg(" + strconv.FormatUint(uint64(e), 10) + ")"
}
