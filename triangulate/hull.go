package triangulate

import (
	"sort"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/predicates"
)

// ConvexHull returns the indices of the hull vertices of points in
// counterclockwise order, starting from the lowest-leftmost point. Points in
// the middle of a hull edge are left out, as are repeats. Fewer than three
// indices means the points are collinear.
func ConvexHull(points []geom.Point2D) []int {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return points[order[i]].Less(points[order[j]])
	})

	unique := order[:0]
	for _, i := range order {
		if len(unique) > 0 && points[unique[len(unique)-1]] == points[i] {
			continue
		}
		unique = append(unique, i)
	}
	if len(unique) < 3 {
		return unique
	}

	turnsLeft := func(chain []int, i int) bool {
		a, b := points[chain[len(chain)-2]], points[chain[len(chain)-1]]
		return predicates.Orient2D(a, b, points[i]) > 0
	}

	var hull []int
	for _, i := range unique {
		for len(hull) >= 2 && !turnsLeft(hull, i) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	lower := len(hull)
	for k := len(unique) - 2; k >= 0; k-- {
		i := unique[k]
		for len(hull) > lower && !turnsLeft(hull, i) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	// The last point repeats the first
	return hull[:len(hull)-1]
}
