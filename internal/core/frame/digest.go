package frame

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/soccer/internal/core/geometry"
)

// Digest fingerprints the command so consumers can tell whether it changed
// between ticks without comparing variant payloads.
func (c Command) Digest() uint64 {
	buf := make([]byte, 0, 128)
	buf = appendMotion(buf, c.Motion)
	buf = appendFacing(buf, c.Facing)
	buf = append(buf, byte(c.Dribble), boolByte(c.Kick.Enabled), c.Kick.Strength)
	buf = appendFloat(buf, c.VScale)
	return xxhash.Sum64(buf)
}

func appendMotion(buf []byte, m MotionCommand) []byte {
	if m == nil {
		m = Idle{}
	}
	buf = append(buf, string(m.Kind())...)
	buf = append(buf, 0)
	switch v := m.(type) {
	case Velocity:
		buf = appendPoint(buf, v.Trans)
		buf = appendFloat(buf, v.Angular)
	case PointGoal:
		buf = appendPoint(buf, v.Target)
		buf = append(buf, byte(v.End))
	case Path:
		buf = appendPoints(buf, v.Points)
		buf = append(buf, byte(v.End))
	case Bezier:
		buf = appendPoints(buf, v.Controls)
		buf = append(buf, byte(v.Facing), byte(v.End))
	case TimedPath:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(v.Nodes)))
		for _, n := range v.Nodes {
			buf = appendPoint(buf, n.Pos)
			buf = binary.LittleEndian.AppendUint64(buf, uint64(n.Time))
		}
		buf = appendTime(buf, v.Start)
	case Pivot:
		buf = appendPoint(buf, v.Center)
		buf = append(buf, byte(v.Dir))
	case Spin:
		buf = append(buf, byte(v.Dir))
	}
	return buf
}

func appendFacing(buf []byte, f Facing) []byte {
	p, ok := f.(FacePoint)
	if !ok {
		return append(buf, 0)
	}
	buf = append(buf, 1, boolByte(p.Continuous))
	return appendPoint(buf, p.Target)
}

func appendPoints(buf []byte, pts []geometry.Point) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(pts)))
	for _, p := range pts {
		buf = appendPoint(buf, p)
	}
	return buf
}

func appendPoint(buf []byte, p geometry.Point) []byte {
	return appendFloat(appendFloat(buf, p.X), p.Y)
}

func appendFloat(buf []byte, f float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
}

func appendTime(buf []byte, t time.Time) []byte {
	return binary.LittleEndian.AppendUint64(buf, uint64(t.UnixNano()))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
