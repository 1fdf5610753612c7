package scene

import (
	"image"

	"chopper-recorder/internal/mathutil"
	"chopper-recorder/internal/raster"
)

// Render draws one frame into fb: meshes at the given tick, the axis line,
// the marker trail, and the marker itself at markerPos.
func (s *Scene) Render(fb *raster.FrameBuffer, markerPos mathutil.Vec3, trail []mathutil.Vec3, tick int) {
	fb.Clear(s.Background)

	lc := raster.DefaultLightConfig()
	margin := fb.Width / 40 // scales with supersampling

	var px, py, pz []float64
	for _, o := range s.Objects {
		m := o.Mesh
		if len(m.Verts) == 0 {
			continue
		}
		px, py, pz = s.Camera.Project(o.TickVerts(tick), fb.Width, fb.Height, margin, px, py, pz)

		var tex *image.NRGBA
		if s.Textures != nil && m.TexPath != "" {
			tex = s.Textures.Resolve(m.TexPath)
		}

		for _, tri := range m.Tris {
			raster.RasterizeTriangle(fb, px, py, pz, m.UVs, tri.VI, tri.TI, tex,
				m.Color.R, m.Color.G, m.Color.B, m.Color.A, &lc)
		}
	}

	if s.Axis != nil {
		px, py, pz = s.Camera.Project([]mathutil.Vec3{s.Axis.Start, s.Axis.End},
			fb.Width, fb.Height, margin, px, py, pz)
		raster.DrawLine3D(fb, px[0], py[0], pz[0], px[1], py[1], pz[1], s.Axis.Width, s.Axis.Color)
	}

	// Trail first so the live marker draws over it
	if len(trail) > 0 {
		px, py, pz = s.Camera.Project(trail, fb.Width, fb.Height, margin, px, py, pz)
		tc := s.Marker.Color
		tc.R /= 2
		tc.G /= 2
		tc.B /= 2
		for i := range trail {
			raster.DrawDisc(fb, px[i], py[i], pz[i], s.Marker.Radius/2+1, tc)
		}
	}

	px, py, pz = s.Camera.Project([]mathutil.Vec3{markerPos}, fb.Width, fb.Height, margin, px, py, pz)
	raster.DrawDisc(fb, px[0], py[0], pz[0], s.Marker.Radius, s.Marker.Color)
}
