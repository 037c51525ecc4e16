package csgo

import (
	"github.com/gckit/go-csgo/csgo/gc"
)

// RequestItemPreview asks for the details of one item from an inspect
// link. The s, a, d and m values are the ones named in the link, s is set
// for items in an inventory and m for items on the market, the unused one
// is zero. The response arrives as an item_preview event with a nil
// payload when the item was not found.
func (c *Client) RequestItemPreview(s, a, d, m uint64) error {
	return c.SendMessage(gc.EMsgClientEconPreviewRequest,
		&gc.EconPreviewRequest{
			ParamS: s,
			ParamA: a,
			ParamD: d,
			ParamM: m,
		})
}

func (c *Client) registerInspectEvents() {
	c.OnPacket(gc.EMsgClientEconPreviewResponse, func(_ *gc.Packet, decoded gc.Message) {
		resp := decoded.(*gc.EconPreviewResponse)
		c.emit(EventItemPreview, resp.ItemInfo)
	})
}
