// Package nifti decodes NIfTI-1 files into volumes. The format stores a
// fixed 348-byte header followed by voxel data at vox_offset; files may be
// gzip-compressed (.nii.gz).
package nifti

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"nifti-gridview/internal/volume"
)

const headerSize = 348

// NIfTI-1 datatype codes.
const (
	typeUint8   = 2
	typeInt16   = 4
	typeInt32   = 8
	typeFloat32 = 16
	typeFloat64 = 64
	typeInt8    = 256
	typeUint16  = 512
	typeUint32  = 768
)

// header mirrors the nifti_1_header struct byte for byte.
type header struct {
	SizeofHdr    int32
	DataType     [10]byte
	DBName       [18]byte
	Extents      int32
	SessionError int16
	Regular      byte
	DimInfo      byte
	Dim          [8]int16
	IntentP1     float32
	IntentP2     float32
	IntentP3     float32
	IntentCode   int16
	Datatype     int16
	Bitpix       int16
	SliceStart   int16
	Pixdim       [8]float32
	VoxOffset    float32
	SclSlope     float32
	SclInter     float32
	SliceEnd     int16
	SliceCode    byte
	XyztUnits    byte
	CalMax       float32
	CalMin       float32
	SliceDur     float32
	Toffset      float32
	Glmax        int32
	Glmin        int32
	Descrip      [80]byte
	AuxFile      [24]byte
	QformCode    int16
	SformCode    int16
	QuaternB     float32
	QuaternC     float32
	QuaternD     float32
	QoffsetX     float32
	QoffsetY     float32
	QoffsetZ     float32
	SrowX        [4]float32
	SrowY        [4]float32
	SrowZ        [4]float32
	IntentName   [16]byte
	Magic        [4]byte
}

// IsNIfTIFile reports whether the filename carries a NIfTI suffix.
func IsNIfTIFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".nii") || strings.HasSuffix(lower, ".nii.gz")
}

// Open reads and decodes the NIfTI file at path, transparently handling gzip
// compression.
func Open(path string) (*volume.Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	vol, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return vol, nil
}

// Decode parses a complete NIfTI-1 byte stream into a volume. Dimensions
// beyond the third select volume 0.
func Decode(data []byte) (*volume.Volume, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("file too short for NIfTI-1 header: %d bytes", len(data))
	}

	hdr, order, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	nx, ny, nz := int(hdr.Dim[1]), int(hdr.Dim[2]), int(hdr.Dim[3])
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("invalid spatial dimensions %dx%d", nx, ny)
	}
	if nz <= 0 {
		nz = 1
	}

	voxOffset := int(hdr.VoxOffset)
	if voxOffset < headerSize {
		voxOffset = headerSize
	}
	if voxOffset > len(data) {
		return nil, fmt.Errorf("vox_offset %d beyond file size %d", voxOffset, len(data))
	}

	bytesPerVoxel := int(hdr.Bitpix) / 8
	count := nx * ny * nz
	if bytesPerVoxel <= 0 || voxOffset+count*bytesPerVoxel > len(data) {
		return nil, fmt.Errorf("voxel data truncated: need %d bytes at offset %d, have %d",
			count*bytesPerVoxel, voxOffset, len(data))
	}

	raw := data[voxOffset : voxOffset+count*bytesPerVoxel]
	values, err := decodeVoxels(raw, count, int(hdr.Datatype), order)
	if err != nil {
		return nil, err
	}

	// Apply intensity scaling. Slope zero means unscaled per the standard.
	if hdr.SclSlope != 0 && (hdr.SclSlope != 1 || hdr.SclInter != 0) {
		slope := float64(hdr.SclSlope)
		inter := float64(hdr.SclInter)
		for i := range values {
			values[i] = values[i]*slope + inter
		}
	}

	// NIfTI stores x fastest; our axes are (depth, height, width) = (z, y, x).
	return volume.NewFromData(nz, ny, nx, values)
}

func parseHeader(data []byte) (*header, binary.ByteOrder, error) {
	hdr := &header{}

	var order binary.ByteOrder = binary.LittleEndian
	if err := binary.Read(bytes.NewReader(data[:headerSize]), order, hdr); err != nil {
		return nil, nil, fmt.Errorf("header parse failed: %w", err)
	}

	if hdr.SizeofHdr != headerSize {
		order = binary.BigEndian
		if err := binary.Read(bytes.NewReader(data[:headerSize]), order, hdr); err != nil {
			return nil, nil, fmt.Errorf("header parse failed: %w", err)
		}
		if hdr.SizeofHdr != headerSize {
			return nil, nil, fmt.Errorf("not a NIfTI-1 file: sizeof_hdr %d", hdr.SizeofHdr)
		}
	}

	magic := string(hdr.Magic[:3])
	if magic != "n+1" && magic != "ni1" {
		return nil, nil, fmt.Errorf("not a NIfTI-1 file: magic %q", magic)
	}

	if hdr.Dim[0] < 1 || hdr.Dim[0] > 7 {
		return nil, nil, fmt.Errorf("invalid dim[0] %d", hdr.Dim[0])
	}

	return hdr, order, nil
}

func decodeVoxels(raw []byte, count, datatype int, order binary.ByteOrder) ([]float64, error) {
	values := make([]float64, count)

	switch datatype {
	case typeUint8:
		for i := 0; i < count; i++ {
			values[i] = float64(raw[i])
		}
	case typeInt8:
		for i := 0; i < count; i++ {
			values[i] = float64(int8(raw[i]))
		}
	case typeInt16:
		for i := 0; i < count; i++ {
			values[i] = float64(int16(order.Uint16(raw[i*2:])))
		}
	case typeUint16:
		for i := 0; i < count; i++ {
			values[i] = float64(order.Uint16(raw[i*2:]))
		}
	case typeInt32:
		for i := 0; i < count; i++ {
			values[i] = float64(int32(order.Uint32(raw[i*4:])))
		}
	case typeUint32:
		for i := 0; i < count; i++ {
			values[i] = float64(order.Uint32(raw[i*4:]))
		}
	case typeFloat32:
		for i := 0; i < count; i++ {
			values[i] = float64(math.Float32frombits(order.Uint32(raw[i*4:])))
		}
	case typeFloat64:
		for i := 0; i < count; i++ {
			values[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
	default:
		return nil, fmt.Errorf("unsupported NIfTI datatype %d", datatype)
	}

	return values, nil
}
