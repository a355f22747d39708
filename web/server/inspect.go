package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/geometry"
	"github.com/curious-energy/learn-raytracing/pkg/integrator"
	"github.com/curious-energy/learn-raytracing/pkg/material"
	"github.com/curious-energy/learn-raytracing/pkg/renderer"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Linear color of the pixel
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	rgb := renderer.ToneMap(v)
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// extractMaterialInfo names a material after the preset it matches, if any
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"refractiveIndex":  mat.RefractiveIndex,
		"albedo":           [4]float64(mat.Albedo),
		"diffuseColor":     vecArray(mat.DiffuseColor),
		"specularExponent": mat.SpecularExponent,
		"color":            hexColor(mat.DiffuseColor),
	}

	for _, name := range material.PresetNames() {
		if preset, err := material.Preset(name); err == nil && preset == mat {
			return name, properties
		}
	}
	return "custom", properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case geometry.Checkerboard:
		properties["height"] = geom.Height
		properties["halfWidth"] = geom.HalfWidth
		properties["zNear"] = geom.ZNear
		properties["zFar"] = geom.ZFar
		return "checkerboard", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through a pixel center and describes
// the first object it hits
func inspectPixel(sceneObj *scene.Scene, req *RenderRequest, pixelX, pixelY int) InspectResponse {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Width:  req.Width,
		Height: req.Height,
		FOV:    req.fovRadians(),
	})
	ray := camera.GetRay(pixelX, pixelY)
	color := integrator.NewWhitted(integrator.Config{MaxDepth: req.MaxDepth}).RayColor(ray, sceneObj)

	shape, t, ok := sceneObj.Nearest(ray.Origin, ray.Direction)
	if !ok {
		return InspectResponse{Hit: false, Color: vecArray(color)}
	}
	hit := shape.HitAt(ray.Origin, ray.Direction, t)

	materialType, materialProps := extractMaterialInfo(hit.Material)
	geometryType, geometryProps := extractGeometryInfo(shape)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.Distance,
		Color:        vecArray(color),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req, pixelX, pixelY))
}
