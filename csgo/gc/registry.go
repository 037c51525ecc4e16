package gc

// NewMessage returns an empty message of the right Go type for a GC message
// the client can receive. The second return value is false for message types
// this module has no codec for, their packets are still delivered raw.
func NewMessage(t EMsg) (Message, bool) {
	switch t {
	case EMsgClientWelcome:
		return new(ClientWelcome), true
	case EMsgClientConnectionStatus:
		return new(ConnectionStatusUpdate), true
	case EMsgSOCreate, EMsgSOUpdate, EMsgSODestroy:
		return new(SOSingleObject), true
	case EMsgSOCacheSubscribed:
		return new(SOCacheSubscribed), true
	case EMsgSOCacheUnsubscribed:
		return new(SOCacheUnsubscribed), true
	case EMsgSOUpdateMultiple:
		return new(SOMultipleObjects), true
	case EMsgMatchmakingGC2ClientHello:
		return new(MatchmakingGC2ClientHello), true
	case EMsgMatchList:
		return new(MatchList), true
	case EMsgWatchInfoUsers:
		return new(WatchInfoUsers), true
	case EMsgPlayersProfile:
		return new(PlayersProfile), true
	case EMsgClientEconPreviewResponse:
		return new(EconPreviewResponse), true
	case EMsgClientGCRankUpdate:
		return new(ClientGCRankUpdate), true
	default:
		return nil, false
	}
}
