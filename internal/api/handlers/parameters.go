package handlers

import (
	"net/http"

	"fieldplot/internal/api/models"
	"fieldplot/internal/config"

	"github.com/gin-gonic/gin"
)

// ListParameters handles GET /api/v1/parameters
func ListParameters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": parameterGroups(config.Default())})
}

func parameterGroups(d *config.Config) []models.ParameterGroup {
	return []models.ParameterGroup{
		{
			Name:        "grid",
			Description: "Sampling grid the field is evaluated on. The plot view matches the grid extent.",
			Parameters: []models.ParameterInfo{
				{Name: "x_min", Type: "float", Description: "Left edge of the grid", Default: d.Grid.XMin},
				{Name: "x_max", Type: "float", Description: "Right edge of the grid", Default: d.Grid.XMax},
				{Name: "y_min", Type: "float", Description: "Bottom edge of the grid", Default: d.Grid.YMin},
				{Name: "y_max", Type: "float", Description: "Top edge of the grid", Default: d.Grid.YMax},
				{Name: "samples_x", Type: "int", Description: "Number of samples along x (2..400)", Default: d.Grid.SamplesX},
				{Name: "samples_y", Type: "int", Description: "Number of samples along y (2..400)", Default: d.Grid.SamplesY},
			},
		},
		{
			Name:        "physics",
			Description: "Constants of the regularized Coulomb superposition.",
			Parameters: []models.ParameterInfo{
				{Name: "coulomb_constant", Type: "float", Description: "Coulomb's constant k", Default: d.Physics.CoulombConstant},
				{Name: "epsilon", Type: "float", Description: "Added to r² to keep the field finite at a charge", Default: d.Physics.Epsilon},
			},
		},
		{
			Name:        "render",
			Description: "Output image settings.",
			Parameters: []models.ParameterInfo{
				{Name: "width", Type: "int", Description: "Image width in pixels", Default: d.Render.Width},
				{Name: "height", Type: "int", Description: "Image height in pixels", Default: d.Render.Height},
				{Name: "density", Type: "float", Description: "Streamline density (at most 10)", Default: d.Render.Density},
				{Name: "seeding", Type: "string", Description: "Streamline seeding: grid or charges", Default: d.Render.Seeding},
				{Name: "lines_per_charge", Type: "float", Description: "Lines per unit of charge when seeding from charges", Default: d.Render.LinesPerCharge},
				{Name: "line_width", Type: "float", Description: "Streamline width in pixels", Default: d.Render.LineWidth},
				{Name: "marker_radius", Type: "float", Description: "Charge marker radius in data units", Default: d.Render.MarkerRadius},
				{Name: "grid_lines", Type: "bool", Description: "Draw dashed grid lines", Default: *d.Render.GridLines},
				{Name: "arrows", Type: "bool", Description: "Draw direction arrows on streamlines", Default: *d.Render.Arrows},
			},
		},
	}
}
