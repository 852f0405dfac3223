package kriging

import (
	"errors"
	"sort"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

type voxelGrid struct {
	LeafSize float64
}

type voxel struct {
	sum vec3d.T
	num int
}

func newVoxelGrid(leafSize float64) *voxelGrid {
	return &voxelGrid{LeafSize: leafSize}
}

func minMaxVec3(ra []vec3d.T) (vec3d.T, vec3d.T, error) {
	if len(ra) == 0 {
		return vec3d.T{}, vec3d.T{}, errors.New("no point")
	}
	min, max := ra[0], ra[0]
	for i := 1; i < len(ra); i++ {
		v := ra[i]
		for k := range v {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max, nil
}

func MulFloat(vec *vec3d.T, v float64) *vec3d.T {
	vec[0] *= v
	vec[1] *= v
	vec[2] *= v
	return vec
}

// Filter averages the samples (location and value) falling in the same
// square leaf. Output follows leaf order, row by row from the south-west.
func (f *voxelGrid) Filter(pc []vec3d.T) ([]vec3d.T, error) {
	min, max, err := minMaxVec3(pc)
	if err != nil {
		return nil, err
	}

	xs := int((max[0]-min[0])/f.LeafSize) + 1
	voxels := make(map[int]*voxel, len(pc))
	order := make([]int, 0, len(pc))

	for i := range pc {
		x := int((pc[i][0] - min[0]) / f.LeafSize)
		y := int((pc[i][1] - min[1]) / f.LeafSize)
		key := x + xs*y
		v, ok := voxels[key]
		if !ok {
			v = &voxel{}
			voxels[key] = v
			order = append(order, key)
		}
		v.num++
		v.sum.Add(&pc[i])
	}
	sort.Ints(order)
	newPc := make([]vec3d.T, 0, len(order))
	for _, key := range order {
		v := voxels[key]
		newPc = append(newPc, *MulFloat(&v.sum, 1.0/float64(v.num)))
	}
	return newPc, nil
}

// ThinSamples merges samples closer than cell into their average. A
// non-positive cell returns the input unchanged.
func ThinSamples(samples []vec3d.T, cell float64) ([]vec3d.T, error) {
	if cell <= 0 {
		return samples, nil
	}
	return newVoxelGrid(cell).Filter(samples)
}
