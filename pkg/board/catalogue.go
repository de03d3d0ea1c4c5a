package board

import "fmt"

// PieceObj is an immutable piece template owned by one player.
type PieceObj struct {
	Owner   int
	Num     int
	Name    string
	Display string
}

// Catalogue maps, per player, piece names to their templates.
type Catalogue struct {
	players int
	ordered [][]*PieceObj
	byName  []map[string]*PieceObj
	byNum   []map[int]*PieceObj
}

// NewCatalogue returns an empty catalogue for players 1..players.
func NewCatalogue(players int) *Catalogue {
	if players < 0 {
		players = 0
	}
	c := &Catalogue{
		players: players,
		ordered: make([][]*PieceObj, players),
		byName:  make([]map[string]*PieceObj, players),
		byNum:   make([]map[int]*PieceObj, players),
	}
	for i := 0; i < players; i++ {
		c.byName[i] = make(map[string]*PieceObj)
		c.byNum[i] = make(map[int]*PieceObj)
	}
	return c
}

// Add declares a template. Names and numbers must be unique per player;
// the same name may be reused by another player.
func (c *Catalogue) Add(owner, num int, name, display string) (*PieceObj, error) {
	if owner < 1 || owner > c.players {
		return nil, fmt.Errorf("%w: piece %q declared for player %d of %d", ErrInvalidPlayer, name, owner, c.players)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: piece for player %d has an empty name", ErrDuplicatePiece, owner)
	}
	idx := owner - 1
	if _, ok := c.byName[idx][name]; ok {
		return nil, fmt.Errorf("%w: player %d already declares %q", ErrDuplicatePiece, owner, name)
	}
	if prev, ok := c.byNum[idx][num]; ok {
		return nil, fmt.Errorf("%w: player %d uses num %d for both %q and %q", ErrDuplicatePiece, owner, num, prev.Name, name)
	}
	obj := &PieceObj{Owner: owner, Num: num, Name: name, Display: display}
	c.ordered[idx] = append(c.ordered[idx], obj)
	c.byName[idx][name] = obj
	c.byNum[idx][num] = obj
	return obj, nil
}

// Template looks up the template called name for player.
func (c *Catalogue) Template(player int, name string) (*PieceObj, error) {
	if player < 1 || player > c.players {
		return nil, fmt.Errorf("%w: %q for player %d", ErrUnknownPiece, name, player)
	}
	obj, ok := c.byName[player-1][name]
	if !ok {
		return nil, fmt.Errorf("%w: %q for player %d", ErrUnknownPiece, name, player)
	}
	return obj, nil
}

// Templates returns the templates of player in declaration order.
func (c *Catalogue) Templates(player int) []*PieceObj {
	if player < 1 || player > c.players {
		return nil
	}
	out := make([]*PieceObj, len(c.ordered[player-1]))
	copy(out, c.ordered[player-1])
	return out
}
