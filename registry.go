package droidlink

// packetKey is the (type, sub-type) pair identifying one packet variant.
type packetKey struct {
	packetType PacketType
	subType    byte
}

// decodeFunc reconstructs a packet variant from its payload bytes, the type
// and sub-type already stripped.
type decodeFunc func(payload []byte) (Packet, error)

// packetRegistry maps every payload-bearing variant to its decoder. It is
// consulted only on the receive path; the encode path already knows which
// variant it is building. PacketCont and PacketLast carry no variant and are
// deliberately absent.
var packetRegistry = map[packetKey]decodeFunc{
	{PacketCore, CoreSleepSubType}:    decodeCoreSleep,
	{PacketMotors, MotorSpeedSubType}: decodeMotorSpeed,
	{PacketMotors, MotorDriveSubType}: decodeDrive,
	{PacketMotors, MotorTurnSubType}:  decodeTurn,
}

// DecodePacket parses a complete frame (terminator already stripped) into
// its packet variant. It fails with *MalformedFrameError when the frame is
// too short for a header, *UnknownPacketError when no variant matches the
// header, and *DecodeError when the payload is invalid.
func DecodePacket(frame []byte) (Packet, error) {
	if len(frame) < 2 {
		return nil, &MalformedFrameError{Length: len(frame)}
	}
	key := packetKey{PacketType(frame[0]), frame[1]}
	decode, ok := packetRegistry[key]
	if !ok {
		return nil, &UnknownPacketError{Type: key.packetType, SubType: key.subType}
	}
	return decode(frame[2:])
}
