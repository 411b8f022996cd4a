package glrender

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/soypat/geometry/ms3"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices (12 float32s) + uint16 attribute.
)

// WriteBinarySTL writes triangles in binary STL format to w. Normals are computed
// from the triangle winding. It returns the amount of bytes written.
func WriteBinarySTL(w io.Writer, tris []ms3.Triangle) (n int, err error) {
	if uint64(len(tris)) > math.MaxUint32 {
		return 0, errors.New("too many triangles for STL")
	}
	var header [stlHeaderSize + 4]byte
	copy(header[:], "glviz binary STL")
	binary.LittleEndian.PutUint32(header[stlHeaderSize:], uint32(len(tris)))
	ngot, err := w.Write(header[:])
	n += ngot
	if err != nil {
		return n, err
	}
	// Write in chunks to keep the amount of write calls low.
	const chunk = 256
	buf := make([]byte, 0, chunk*stlTriangleSize)
	for i, t := range tris {
		buf = appendSTLTriangle(buf, t)
		if len(buf) == cap(buf) || i == len(tris)-1 {
			ngot, err = w.Write(buf)
			n += ngot
			if err != nil {
				return n, err
			}
			buf = buf[:0]
		}
	}
	return n, nil
}

func appendSTLTriangle(b []byte, t ms3.Triangle) []byte {
	normal := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	if norm := ms3.Norm(normal); norm > 0 {
		normal = ms3.Scale(1/norm, normal)
	}
	b = appendSTLVec(b, normal)
	for _, v := range t {
		b = appendSTLVec(b, v)
	}
	return binary.LittleEndian.AppendUint16(b, 0)
}

func appendSTLVec(b []byte, v ms3.Vec) []byte {
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.X))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Y))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Z))
	return b
}
