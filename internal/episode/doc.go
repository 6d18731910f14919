// Package episode defines the canonical episode value type and the
// comparison primitives the tracker is built on.
//
// Episodes enter the system as loosely-typed catalog records and are
// normalized exactly once by ParseRecord; everything downstream works with
// fully-typed immutable Episode values. The package also owns the aired
// filter and the specials policy, since both are pure functions of episode
// data.
package episode
