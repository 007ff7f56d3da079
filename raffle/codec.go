package raffle

import (
	"encoding/binary"
	"fmt"
)

// Persisted sizes. Object storage is allocated at exactly these sizes so
// layout and allocation never drift apart.
const (
	// ConfigSize: version(1) + initialized(1) + admin(32) + treasury(32) +
	// ticket_price(8) + fee_bps(2).
	ConfigSize = 76

	// RaffleSize: version(1) + initialized(1) + authority(32) + title(32) +
	// end_time(8) + ticket_price(8) + status(1) + winner(32) +
	// tickets_sold(8) + fee_bps(2) + treasury(32) + vrf_account(32) +
	// vrf_in_progress(1).
	RaffleSize = 190

	// AllocationSize: version(1) + initialized(1) + raffle(32) +
	// purchaser(32) + ticket_count(8) + purchase_time(8).
	AllocationSize = 82
)

// EncodeConfig serializes a Config into its fixed layout.
func EncodeConfig(c *Config) []byte {
	buf := make([]byte, ConfigSize)
	buf[0] = LayoutVersion
	buf[1] = flagByte(c.Initialized)
	copy(buf[2:34], c.Admin[:])
	copy(buf[34:66], c.Treasury[:])
	binary.LittleEndian.PutUint64(buf[66:74], c.TicketPrice)
	binary.LittleEndian.PutUint16(buf[74:76], c.FeeBasisPoints)
	return buf
}

// DecodeConfig parses a persisted Config. Storage that was never written
// (missing or all zero) decodes to the uninitialized zero value.
func DecodeConfig(data []byte) (*Config, error) {
	if neverWritten(data) {
		return &Config{}, nil
	}
	if len(data) != ConfigSize {
		return nil, fmt.Errorf("%w: config is %d bytes, want %d", ErrCorruptState, len(data), ConfigSize)
	}
	if data[0] != LayoutVersion {
		return nil, fmt.Errorf("%w: config layout version %d", ErrCorruptState, data[0])
	}

	c := &Config{}
	var err error
	if c.Initialized, err = parseFlag(data[1], "config initialized"); err != nil {
		return nil, err
	}
	copy(c.Admin[:], data[2:34])
	copy(c.Treasury[:], data[34:66])
	c.TicketPrice = binary.LittleEndian.Uint64(data[66:74])
	c.FeeBasisPoints = binary.LittleEndian.Uint16(data[74:76])
	return c, nil
}

// EncodeRaffle serializes a Raffle into its fixed layout.
func EncodeRaffle(r *Raffle) []byte {
	buf := make([]byte, RaffleSize)
	buf[0] = LayoutVersion
	buf[1] = flagByte(r.Initialized)
	copy(buf[2:34], r.Authority[:])
	copy(buf[34:66], r.Title[:])
	binary.LittleEndian.PutUint64(buf[66:74], uint64(r.EndTime))
	binary.LittleEndian.PutUint64(buf[74:82], r.TicketPrice)
	buf[82] = byte(r.Status)
	copy(buf[83:115], r.Winner[:])
	binary.LittleEndian.PutUint64(buf[115:123], r.TicketsSold)
	binary.LittleEndian.PutUint16(buf[123:125], r.FeeBasisPoints)
	copy(buf[125:157], r.Treasury[:])
	copy(buf[157:189], r.VrfAccount[:])
	buf[189] = flagByte(r.VrfRequestInProgress)
	return buf
}

// DecodeRaffle parses a persisted Raffle. Storage that was never written
// decodes to the uninitialized zero value.
func DecodeRaffle(data []byte) (*Raffle, error) {
	if neverWritten(data) {
		return &Raffle{}, nil
	}
	if len(data) != RaffleSize {
		return nil, fmt.Errorf("%w: raffle is %d bytes, want %d", ErrCorruptState, len(data), RaffleSize)
	}
	if data[0] != LayoutVersion {
		return nil, fmt.Errorf("%w: raffle layout version %d", ErrCorruptState, data[0])
	}

	r := &Raffle{}
	var err error
	if r.Initialized, err = parseFlag(data[1], "raffle initialized"); err != nil {
		return nil, err
	}
	copy(r.Authority[:], data[2:34])
	copy(r.Title[:], data[34:66])
	r.EndTime = int64(binary.LittleEndian.Uint64(data[66:74]))
	r.TicketPrice = binary.LittleEndian.Uint64(data[74:82])
	if data[82] > byte(StatusComplete) {
		return nil, fmt.Errorf("%w: raffle status byte 0x%02x", ErrCorruptState, data[82])
	}
	r.Status = Status(data[82])
	copy(r.Winner[:], data[83:115])
	r.TicketsSold = binary.LittleEndian.Uint64(data[115:123])
	r.FeeBasisPoints = binary.LittleEndian.Uint16(data[123:125])
	copy(r.Treasury[:], data[125:157])
	copy(r.VrfAccount[:], data[157:189])
	if r.VrfRequestInProgress, err = parseFlag(data[189], "vrf in progress"); err != nil {
		return nil, err
	}
	return r, nil
}

// EncodeAllocation serializes a TicketAllocation into its fixed layout.
func EncodeAllocation(a *TicketAllocation) []byte {
	buf := make([]byte, AllocationSize)
	buf[0] = LayoutVersion
	buf[1] = flagByte(a.Initialized)
	copy(buf[2:34], a.Raffle[:])
	copy(buf[34:66], a.Purchaser[:])
	binary.LittleEndian.PutUint64(buf[66:74], a.TicketCount)
	binary.LittleEndian.PutUint64(buf[74:82], uint64(a.PurchaseTime))
	return buf
}

// DecodeAllocation parses a persisted TicketAllocation. Storage that was
// never written decodes to the uninitialized zero value.
func DecodeAllocation(data []byte) (*TicketAllocation, error) {
	if neverWritten(data) {
		return &TicketAllocation{}, nil
	}
	if len(data) != AllocationSize {
		return nil, fmt.Errorf("%w: allocation is %d bytes, want %d", ErrCorruptState, len(data), AllocationSize)
	}
	if data[0] != LayoutVersion {
		return nil, fmt.Errorf("%w: allocation layout version %d", ErrCorruptState, data[0])
	}

	a := &TicketAllocation{}
	var err error
	if a.Initialized, err = parseFlag(data[1], "allocation initialized"); err != nil {
		return nil, err
	}
	copy(a.Raffle[:], data[2:34])
	copy(a.Purchaser[:], data[34:66])
	a.TicketCount = binary.LittleEndian.Uint64(data[66:74])
	a.PurchaseTime = int64(binary.LittleEndian.Uint64(data[74:82]))
	return a, nil
}

// neverWritten reports storage that holds no record yet: absent, empty,
// or still all zero bytes from provisioning.
func neverWritten(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

func flagByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// parseFlag rejects flag bytes other than 0 or 1 so silent corruption
// cannot read as a valid record.
func parseFlag(b byte, field string) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s flag byte 0x%02x", ErrCorruptState, field, b)
	}
}
