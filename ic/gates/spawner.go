package gates

import (
	"fmt"
	"strings"

	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/world"
)

// BlockSpawnerFactory creates MCX200 block spawners. The third line of the
// sign names the block to place.
type BlockSpawnerFactory struct{}

// IsRestricted returns true. Spawners change the world beyond redstone.
func (BlockSpawnerFactory) IsRestricted() bool {
	return true
}

// Verify checks the material.
func (BlockSpawnerFactory) Verify(sign *ic.ChangedSign) error {
	if _, err := spawnMaterial(sign); err != nil {
		return ic.Verificationf("MCX200", "%v", err)
	}

	return nil
}

// Create creates a block spawner.
func (BlockSpawnerFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	m, err := spawnMaterial(sign)
	if err != nil {
		return nil, err
	}

	return &BlockSpawner{
		Base:     ic.NewBase(sign, "Block Spawner", "BLOCK SPAWNER"),
		Material: m,
	}, nil
}

func spawnMaterial(sign *ic.ChangedSign) (world.Material, error) {
	name := strings.TrimSpace(sign.Line(2))

	m, ok := world.ParseMaterial(name)
	if !ok || m == world.Air {
		return "", fmt.Errorf("unknown block %q", name)
	}

	return m, nil
}

// BlockSpawner keeps a block above the sign while its input is on.
type BlockSpawner struct {
	ic.Base

	Material world.Material
}

// Trigger places or removes the block.
func (b *BlockSpawner) Trigger(state *ic.ChipState) error {
	b.update(state.Get(0))
	return nil
}

// Think places or removes the block.
func (b *BlockSpawner) Think(state *ic.ChipState) error {
	b.update(state.Get(0))
	return nil
}

// IsAlwaysST returns true.
func (b *BlockSpawner) IsAlwaysST() bool {
	return true
}

// OnBreak removes the spawned block.
func (b *BlockSpawner) OnBreak(e *world.BreakEvent) {
	b.update(false)
}

func (b *BlockSpawner) target() world.Location {
	return b.Sign().Location().Relative(world.Up)
}

func (b *BlockSpawner) update(on bool) {
	w := b.Sign().World()
	t := b.target()
	current := w.Material(t)

	switch {
	case on && current == world.Air:
		w.SetMaterial(t, b.Material)
	case !on && current == b.Material:
		w.SetMaterial(t, world.Air)
	}
}
