package protocol

// RawGPSPosition is a GPS fix decoded from the 27-byte BCD payload of
// the GPS read command, with every field kept in the radio's integer
// units. Latitude and longitude are degree + minutes + thousandths of
// a minute; convert to decimal degrees with Position.
type RawGPSPosition struct {
	LatDeg     uint8  // latitude degrees (0-90)
	LatMin     uint8  // latitude minutes, integer part (0-59)
	LatMinFrac uint16 // latitude minutes, thousandths (0-999)
	LatNorth   bool   // true = North, false = South

	LonDeg     uint16 // longitude degrees (0-180)
	LonMin     uint8  // longitude minutes, integer part (0-59)
	LonMinFrac uint16 // longitude minutes, thousandths (0-999)
	LonEast    bool   // true = East, false = West

	AltTenths   uint32 // altitude in tenths of a meter, before sign
	AltNegative bool   // true = below sea level

	Course      uint16 // course in degrees (0-359)
	SpeedTenths uint32 // speed in tenths of km/h

	UTCYear   uint16
	UTCMonth  uint8
	UTCDay    uint8
	UTCHour   uint8
	UTCMinute uint8
	UTCSecond uint8
}

// GPSPosition is a GPS fix in conventional units.
type GPSPosition struct {
	Latitude  float64 // decimal degrees, negative = South
	Longitude float64 // decimal degrees, negative = West
	Altitude  float64 // meters, negative = below sea level
	Course    uint16  // degrees (0-359)
	Speed     float64 // km/h

	UTCYear   uint16
	UTCMonth  uint8
	UTCDay    uint8
	UTCHour   uint8
	UTCMinute uint8
	UTCSecond uint8
}

// Position converts the raw integer fields to decimal degrees, meters
// and km/h.
func (r RawGPSPosition) Position() GPSPosition {
	latMinutes := float64(r.LatMin) + float64(r.LatMinFrac)/1000
	latitude := float64(r.LatDeg) + latMinutes/60
	if !r.LatNorth {
		latitude = -latitude
	}

	lonMinutes := float64(r.LonMin) + float64(r.LonMinFrac)/1000
	longitude := float64(r.LonDeg) + lonMinutes/60
	if !r.LonEast {
		longitude = -longitude
	}

	altitude := float64(r.AltTenths) / 10
	if r.AltNegative {
		altitude = -altitude
	}

	return GPSPosition{
		Latitude:  latitude,
		Longitude: longitude,
		Altitude:  altitude,
		Course:    r.Course,
		Speed:     float64(r.SpeedTenths) / 10,
		UTCYear:   r.UTCYear,
		UTCMonth:  r.UTCMonth,
		UTCDay:    r.UTCDay,
		UTCHour:   r.UTCHour,
		UTCMinute: r.UTCMinute,
		UTCSecond: r.UTCSecond,
	}
}

func hiNibble(b byte) uint8 { return b >> 4 }
func loNibble(b byte) uint8 { return b & 0x0F }

// decodeGPSData decodes the fixed 27-byte GPS payload. Every nibble
// position is fixed by the device's documented layout; the length is
// validated by the caller.
func decodeGPSData(d []byte) RawGPSPosition {
	// Bytes 0-4: latitude dd°mm.mmm, sign flag in the low nibble of
	// byte 4.
	latDeg := hiNibble(d[0])*10 + loNibble(d[0])
	latMin := hiNibble(d[1])*10 + loNibble(d[1])
	latMinFrac := uint16(hiNibble(d[2]))*100 + uint16(loNibble(d[2]))*10 + uint16(hiNibble(d[3]))
	latNorth := loNibble(d[4]) == 1

	// Bytes 5-10: longitude ddd°mm.mmm, sign flag in the low nibble
	// of byte 10.
	lonDeg := uint16(loNibble(d[5]))*100 + uint16(hiNibble(d[6]))*10 + uint16(loNibble(d[6]))
	lonMin := hiNibble(d[7])*10 + loNibble(d[7])
	lonMinFrac := uint16(hiNibble(d[8]))*100 + uint16(loNibble(d[8]))*10 + uint16(hiNibble(d[9]))
	lonEast := loNibble(d[10]) == 1

	// Bytes 11-14: altitude in 0.1 m steps, sign flag in the low
	// nibble of byte 14.
	altTenths := uint32(hiNibble(d[11]))*100_000 +
		uint32(loNibble(d[11]))*10_000 +
		uint32(hiNibble(d[12]))*1_000 +
		uint32(loNibble(d[12]))*100 +
		uint32(hiNibble(d[13]))*10 +
		uint32(loNibble(d[13]))
	altNegative := loNibble(d[14]) == 1

	// Bytes 15-16: course in 1° steps.
	course := uint16(hiNibble(d[15]))*100 + uint16(loNibble(d[15]))*10 + uint16(hiNibble(d[16]))

	// Bytes 17-19: speed in 0.1 km/h steps.
	speedTenths := uint32(hiNibble(d[17]))*100_000 +
		uint32(loNibble(d[17]))*10_000 +
		uint32(hiNibble(d[18]))*1_000 +
		uint32(loNibble(d[18]))*100 +
		uint32(hiNibble(d[19]))*10 +
		uint32(loNibble(d[19]))

	// Bytes 20-26: UTC date/time, YYYYMMDDhhmmss in BCD pairs.
	utcYear := uint16(hiNibble(d[20]))*1000 + uint16(loNibble(d[20]))*100 +
		uint16(hiNibble(d[21]))*10 + uint16(loNibble(d[21]))

	return RawGPSPosition{
		LatDeg:      latDeg,
		LatMin:      latMin,
		LatMinFrac:  latMinFrac,
		LatNorth:    latNorth,
		LonDeg:      lonDeg,
		LonMin:      lonMin,
		LonMinFrac:  lonMinFrac,
		LonEast:     lonEast,
		AltTenths:   altTenths,
		AltNegative: altNegative,
		Course:      course,
		SpeedTenths: speedTenths,
		UTCYear:     utcYear,
		UTCMonth:    hiNibble(d[22])*10 + loNibble(d[22]),
		UTCDay:      hiNibble(d[23])*10 + loNibble(d[23]),
		UTCHour:     hiNibble(d[24])*10 + loNibble(d[24]),
		UTCMinute:   hiNibble(d[25])*10 + loNibble(d[25]),
		UTCSecond:   hiNibble(d[26])*10 + loNibble(d[26]),
	}
}
