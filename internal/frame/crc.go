package frame

import "github.com/sigurn/crc8"

var maximTable = crc8.MakeTable(crc8.CRC8_MAXIM)

// CRC8 computes the Dallas/Maxim 1-Wire CRC of data. Running it over a
// message including its CRC byte yields zero when nothing was corrupted.
func CRC8(data []byte) byte {
	return crc8.Checksum(data, maximTable)
}

// Checksum returns the wrap-around 8-bit sum of data.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}
