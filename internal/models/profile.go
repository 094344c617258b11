package models

// Profile is a row of the profiles table holding one per-user preference value.
// Lists occupy consecutive idx2 positions starting at zero.
type Profile struct {
	UserID   string  `db:"userid"`
	Idx      string  `db:"idx"`
	Idx2     int     `db:"idx2"`
	ValueID  *int64  `db:"value_id"`
	ValueInt *int64  `db:"value_int"`
	ValueStr *string `db:"value_str"`
	Type     int     `db:"type"`
}
