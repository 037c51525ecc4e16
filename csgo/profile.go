package csgo

import (
	"github.com/gckit/go-csgo/csgo/gc"
)

// profileRequestLevel is the detail level the GC expects for profile
// requests.
const profileRequestLevel = 32

// RequestPlayersProfile asks for the matchmaking profile of another
// account. The account must be a friend of the own account or in the same
// lobby, otherwise the GC stays silent. The response arrives as a
// players_profile event.
func (c *Client) RequestPlayersProfile(accountId uint32) error {
	return c.SendMessage(gc.EMsgClientRequestPlayersProfile,
		&gc.ClientRequestPlayersProfile{
			AccountId:    accountId,
			RequestLevel: profileRequestLevel,
		})
}

func (c *Client) registerProfileEvents() {
	c.OnPacket(gc.EMsgPlayersProfile, func(_ *gc.Packet, decoded gc.Message) {
		c.emit(EventPlayersProfile, decoded.(*gc.PlayersProfile))
	})
	c.OnPacket(gc.EMsgClientGCRankUpdate, func(_ *gc.Packet, decoded gc.Message) {
		c.emit(EventRankUpdate, decoded.(*gc.ClientGCRankUpdate))
	})
}
