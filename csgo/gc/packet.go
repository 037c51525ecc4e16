package gc

// JobIdNone marks a packet that is not part of a job conversation.
const JobIdNone = ^uint64(0)

// protoMask is set on the raw message type of every protobuf backed GC
// message on the Steam wire.
const protoMask = 0x80000000

// Packet is a single GC message together with its routing metadata.
//
// Body holds the serialized payload without any GC header. TargetJobId and
// SourceJobId are JobIdNone unless the packet is part of a job conversation.
type Packet struct {
	AppId       uint32
	Type        EMsg
	TargetJobId uint64
	SourceJobId uint64
	Body        []byte
}

// NewPacket returns a packet of the given type with both job ids unset.
func NewPacket(appId uint32, t EMsg, body []byte) *Packet {
	return &Packet{
		AppId:       appId,
		Type:        t,
		TargetJobId: JobIdNone,
		SourceJobId: JobIdNone,
		Body:        body,
	}
}

// MaskProto returns the raw wire representation of t with the protobuf flag
// set. Transports that speak the Steam CM protocol need the masked form.
func MaskProto(t EMsg) uint32 {
	return uint32(t) | protoMask
}

// StripProto decodes a raw wire message type into an EMsg. The second return
// value reports whether the protobuf flag was set.
func StripProto(raw uint32) (EMsg, bool) {
	return EMsg(raw &^ protoMask), raw&protoMask != 0
}

// HostState is a snapshot of the Steam session that hosts the GC connection.
// PlayingApp is the app id another logon session of the same account is
// playing, or zero when none is.
type HostState struct {
	LoggedOn   bool
	SteamId    uint64
	AccountId  uint32
	PlayingApp uint32
}
