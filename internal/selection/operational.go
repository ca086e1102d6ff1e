package selection

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
)

// OperationalBlock is the unit a structural edit acts on: either the closest
// wanted ancestor group of a selection, or the selected block itself.
type OperationalBlock struct {
	Parent model.BlockGroup
	Block  model.Block
	Path   []model.BlockGroup
}

// GetClosestAncestorBlockGroupIndex returns the index in path (innermost-first)
// of the first group whose type is in wanted. It returns -1 when a stop type is
// met first or nothing matches.
func GetClosestAncestorBlockGroupIndex(path []model.BlockGroup, wanted, stop []model.BlockGroupType) int {
	for i, g := range path {
		t := g.BlockGroupType()
		if slices.Contains(wanted, t) {
			return i
		}
		if slices.Contains(stop, t) {
			return -1
		}
	}
	return -1
}

// GetOperationalBlocks resolves every selection under group to an operational
// block. With deepFirst each wanted type is tried on its own, in order, before
// the next one; otherwise any wanted type matches at each level. Selections
// that resolve to the same block are reported once.
func GetOperationalBlocks(group model.BlockGroup, wanted, stop []model.BlockGroupType, deepFirst bool) []OperationalBlock {
	sequence := [][]model.BlockGroupType{wanted}
	if deepFirst && len(wanted) > 1 {
		sequence = make([][]model.BlockGroupType, 0, len(wanted))
		for _, t := range wanted {
			sequence = append(sequence, []model.BlockGroupType{t})
		}
	}

	var result []OperationalBlock
	seen := func(b model.Block) bool {
		return slices.ContainsFunc(result, func(ob OperationalBlock) bool { return ob.Block == b })
	}

	for _, s := range CollectSelections(group, &Options{IncludeListFormatHolder: Never}) {
		for i, types := range sequence {
			index := GetClosestAncestorBlockGroupIndex(s.Path, types, stop)
			if index >= 0 {
				block, ok := s.Path[index].(model.Block)
				if ok && !seen(block) {
					var parent model.BlockGroup
					if index+1 < len(s.Path) {
						parent = s.Path[index+1]
					}
					result = append(result, OperationalBlock{Parent: parent, Block: block, Path: s.Path})
				}
				break
			}
			if i == len(sequence)-1 && s.Block != nil && !seen(s.Block) {
				result = append(result, OperationalBlock{Parent: s.Path[0], Block: s.Block, Path: s.Path})
			}
		}
	}
	return result
}
