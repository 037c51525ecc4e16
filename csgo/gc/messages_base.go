package gc

// SOIDOwner identifies the owner of a shared object cache, usually a steam
// id with a type tag.
type SOIDOwner struct {
	Type int32
	Id   uint64
}

// IsZero reports whether the owner id is unset.
func (m SOIDOwner) IsZero() bool { return m.Type == 0 && m.Id == 0 }

func (m *SOIDOwner) Marshal() ([]byte, error) {
	var e enc
	e.int32(1, m.Type)
	e.uint64(2, m.Id)
	return e.buf, nil
}

func (m *SOIDOwner) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Type = d.int32()
		case 2:
			m.Id = d.uint64()
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOCacheHaveVersion reports the version of a cache the client already has,
// letting the GC skip resending unchanged subscriptions.
type SOCacheHaveVersion struct {
	Owner   SOIDOwner
	Version uint64
}

func (m *SOCacheHaveVersion) Marshal() ([]byte, error) {
	var e enc
	if err := e.msg(1, &m.Owner); err != nil {
		return nil, err
	}
	e.fixed64(2, m.Version)
	return e.buf, nil
}

func (m *SOCacheHaveVersion) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			d.msg(&m.Owner)
		case 2:
			m.Version = d.fixed64()
		default:
			d.skip()
		}
	}
	return d.err()
}

// ClientHello asks the Game Coordinator to establish a session.
type ClientHello struct {
	Version       uint32
	CacheVersions []SOCacheHaveVersion
	SessionNeed   uint32
	Launcher      LauncherType
}

func (m *ClientHello) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.Version)
	for i := range m.CacheVersions {
		if err := e.msg(2, &m.CacheVersions[i]); err != nil {
			return nil, err
		}
	}
	e.uint32(3, m.SessionNeed)
	e.uint32(4, uint32(m.Launcher))
	return e.buf, nil
}

func (m *ClientHello) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Version = d.uint32()
		case 2:
			var v SOCacheHaveVersion
			d.msg(&v)
			m.CacheVersions = append(m.CacheVersions, v)
		case 3:
			m.SessionNeed = d.uint32()
		case 4:
			m.Launcher = LauncherType(d.uint32())
		default:
			d.skip()
		}
	}
	return d.err()
}

// WelcomeLocation is the geo location the GC believes the client connects
// from.
type WelcomeLocation struct {
	Latitude  float32
	Longitude float32
	Country   string
}

func (m *WelcomeLocation) Marshal() ([]byte, error) {
	var e enc
	e.float(1, m.Latitude)
	e.float(2, m.Longitude)
	e.str(3, m.Country)
	return e.buf, nil
}

func (m *WelcomeLocation) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Latitude = d.float()
		case 2:
			m.Longitude = d.float()
		case 3:
			m.Country = d.str()
		default:
			d.skip()
		}
	}
	return d.err()
}

// ClientWelcome is the GC response that establishes a session. GameData
// carries a game specific payload, for CS:GO a serialized CMsgCStrike15Welcome.
type ClientWelcome struct {
	Version         uint32
	GameData        []byte
	OutofdateCaches []SOCacheSubscribed
	UptodateCaches  []SOCacheHaveVersion
	Location        *WelcomeLocation
	TxnCountryCode  string
}

func (m *ClientWelcome) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, m.Version)
	e.bytes(2, m.GameData)
	for i := range m.OutofdateCaches {
		if err := e.msg(3, &m.OutofdateCaches[i]); err != nil {
			return nil, err
		}
	}
	for i := range m.UptodateCaches {
		if err := e.msg(4, &m.UptodateCaches[i]); err != nil {
			return nil, err
		}
	}
	if m.Location != nil {
		if err := e.msg(5, m.Location); err != nil {
			return nil, err
		}
	}
	e.str(13, m.TxnCountryCode)
	return e.buf, nil
}

func (m *ClientWelcome) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Version = d.uint32()
		case 2:
			m.GameData = d.bytes()
		case 3:
			var c SOCacheSubscribed
			d.msg(&c)
			m.OutofdateCaches = append(m.OutofdateCaches, c)
		case 4:
			var v SOCacheHaveVersion
			d.msg(&v)
			m.UptodateCaches = append(m.UptodateCaches, v)
		case 5:
			m.Location = new(WelcomeLocation)
			d.msg(m.Location)
		case 13:
			m.TxnCountryCode = d.str()
		default:
			d.skip()
		}
	}
	return d.err()
}

// ConnectionStatusUpdate reports the state of the GC session, including the
// logon queue position while the session is pending.
type ConnectionStatusUpdate struct {
	Status               ConnectionStatus
	SessionNeed          uint32
	QueuePosition        int32
	QueueSize            int32
	WaitSeconds          int32
	EstimatedWaitSeconds int32
}

func (m *ConnectionStatusUpdate) Marshal() ([]byte, error) {
	var e enc
	e.uint32(1, uint32(m.Status))
	e.uint32(2, m.SessionNeed)
	e.int32(3, m.QueuePosition)
	e.int32(4, m.QueueSize)
	e.int32(5, m.WaitSeconds)
	e.int32(6, m.EstimatedWaitSeconds)
	return e.buf, nil
}

func (m *ConnectionStatusUpdate) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Status = ConnectionStatus(d.uint32())
		case 2:
			m.SessionNeed = d.uint32()
		case 3:
			m.QueuePosition = d.int32()
		case 4:
			m.QueueSize = d.int32()
		case 5:
			m.WaitSeconds = d.int32()
		case 6:
			m.EstimatedWaitSeconds = d.int32()
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOSingleObject carries one shared object for a create, update or destroy.
type SOSingleObject struct {
	Owner      uint64
	TypeId     SOType
	ObjectData []byte
	Version    uint64
	OwnerSOID  SOIDOwner
}

func (m *SOSingleObject) Marshal() ([]byte, error) {
	var e enc
	e.fixed64(1, m.Owner)
	e.int32(2, int32(m.TypeId))
	e.bytes(3, m.ObjectData)
	e.fixed64(4, m.Version)
	if !m.OwnerSOID.IsZero() {
		if err := e.msg(5, &m.OwnerSOID); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *SOSingleObject) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Owner = d.fixed64()
		case 2:
			m.TypeId = SOType(d.int32())
		case 3:
			m.ObjectData = d.bytes()
		case 4:
			m.Version = d.fixed64()
		case 5:
			d.msg(&m.OwnerSOID)
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOTypeBundle groups the serialized objects of one type inside a cache
// subscription.
type SOTypeBundle struct {
	TypeId     SOType
	ObjectData [][]byte
}

func (m *SOTypeBundle) Marshal() ([]byte, error) {
	var e enc
	e.int32(1, int32(m.TypeId))
	for _, data := range m.ObjectData {
		e.bytesElem(2, data)
	}
	return e.buf, nil
}

func (m *SOTypeBundle) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.TypeId = SOType(d.int32())
		case 2:
			m.ObjectData = append(m.ObjectData, d.bytes())
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOCacheSubscribed delivers the full contents of a cache the client was
// subscribed to.
type SOCacheSubscribed struct {
	Owner     uint64
	Objects   []SOTypeBundle
	Version   uint64
	OwnerSOID SOIDOwner
}

func (m *SOCacheSubscribed) Marshal() ([]byte, error) {
	var e enc
	e.fixed64(1, m.Owner)
	for i := range m.Objects {
		if err := e.msg(2, &m.Objects[i]); err != nil {
			return nil, err
		}
	}
	e.fixed64(3, m.Version)
	if !m.OwnerSOID.IsZero() {
		if err := e.msg(4, &m.OwnerSOID); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *SOCacheSubscribed) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Owner = d.fixed64()
		case 2:
			var b SOTypeBundle
			d.msg(&b)
			m.Objects = append(m.Objects, b)
		case 3:
			m.Version = d.fixed64()
		case 4:
			d.msg(&m.OwnerSOID)
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOCacheUnsubscribed tells the client to drop a cache it was subscribed to.
type SOCacheUnsubscribed struct {
	Owner     uint64
	OwnerSOID SOIDOwner
}

func (m *SOCacheUnsubscribed) Marshal() ([]byte, error) {
	var e enc
	e.fixed64(1, m.Owner)
	if !m.OwnerSOID.IsZero() {
		if err := e.msg(2, &m.OwnerSOID); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *SOCacheUnsubscribed) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Owner = d.fixed64()
		case 2:
			d.msg(&m.OwnerSOID)
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOObject is a single serialized object inside a multi object update.
type SOObject struct {
	TypeId     SOType
	ObjectData []byte
}

func (m *SOObject) Marshal() ([]byte, error) {
	var e enc
	e.int32(1, int32(m.TypeId))
	e.bytes(2, m.ObjectData)
	return e.buf, nil
}

func (m *SOObject) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.TypeId = SOType(d.int32())
		case 2:
			m.ObjectData = d.bytes()
		default:
			d.skip()
		}
	}
	return d.err()
}

// SOMultipleObjects batches several shared object changes into one message.
type SOMultipleObjects struct {
	Owner     uint64
	Modified  []SOObject
	Version   uint64
	Added     []SOObject
	Removed   []SOObject
	OwnerSOID SOIDOwner
}

func (m *SOMultipleObjects) Marshal() ([]byte, error) {
	var e enc
	e.fixed64(1, m.Owner)
	for i := range m.Modified {
		if err := e.msg(2, &m.Modified[i]); err != nil {
			return nil, err
		}
	}
	e.fixed64(3, m.Version)
	for i := range m.Added {
		if err := e.msg(4, &m.Added[i]); err != nil {
			return nil, err
		}
	}
	for i := range m.Removed {
		if err := e.msg(5, &m.Removed[i]); err != nil {
			return nil, err
		}
	}
	if !m.OwnerSOID.IsZero() {
		if err := e.msg(6, &m.OwnerSOID); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *SOMultipleObjects) Unmarshal(data []byte) error {
	d := dec{buf: data}
	for d.more() {
		switch d.tag() {
		case 1:
			m.Owner = d.fixed64()
		case 2:
			var o SOObject
			d.msg(&o)
			m.Modified = append(m.Modified, o)
		case 3:
			m.Version = d.fixed64()
		case 4:
			var o SOObject
			d.msg(&o)
			m.Added = append(m.Added, o)
		case 5:
			var o SOObject
			d.msg(&o)
			m.Removed = append(m.Removed, o)
		case 6:
			d.msg(&m.OwnerSOID)
		default:
			d.skip()
		}
	}
	return d.err()
}
