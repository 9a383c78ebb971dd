package codec

import (
	"encoding/binary"
	"fmt"
)

// jpegOrientation extracts the EXIF orientation value (1-8) from a JPEG
// byte stream. Only IFD0's orientation tag is read; the full EXIF tag soup is
// irrelevant to a filter pipeline.
func jpegOrientation(data []byte) (int, error) {
	tiffStart, err := tiffStartFromJPEG(data)
	if err != nil {
		return 0, err
	}
	return orientationFromTIFF(data, tiffStart)
}

// tiffStartFromJPEG walks JPEG segments looking for an APP1 Exif block and
// returns the offset where the embedded TIFF header begins.
func tiffStartFromJPEG(data []byte) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("data too short")
	}
	i := 2 // skip SOI marker
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan, no EXIF past this point
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("no exif segment")
}

// orientationFromTIFF scans IFD0 of the TIFF structure at tiffStart for the
// orientation tag (0x0112, SHORT).
func orientationFromTIFF(data []byte, tiffStart int) (int, error) {
	if tiffStart < 0 || tiffStart+8 > len(data) {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch {
	case data[tiffStart] == 'M' && data[tiffStart+1] == 'M':
		order = binary.BigEndian
	case data[tiffStart] == 'I' && data[tiffStart+1] == 'I':
		order = binary.LittleEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}
	ifdOffset := int(order.Uint32(data[tiffStart+4 : tiffStart+8]))
	ifd := tiffStart + ifdOffset
	if ifd+2 > len(data) {
		return 0, fmt.Errorf("ifd truncated")
	}
	nEntries := int(order.Uint16(data[ifd : ifd+2]))
	for e := 0; e < nEntries; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		typ := order.Uint16(data[ent+2 : ent+4])
		if tag == 0x0112 && typ == 3 { // orientation, SHORT
			v := int(order.Uint16(data[ent+8 : ent+10]))
			if v >= 1 && v <= 8 {
				return v, nil
			}
			return 0, fmt.Errorf("orientation value %d out of range", v)
		}
	}
	return 0, fmt.Errorf("no orientation tag")
}
