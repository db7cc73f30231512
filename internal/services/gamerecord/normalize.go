package gamerecord

import "github.com/kunalgolani-work/kachuful-backend/internal/model"

// Normalize upgrades the legacy encoding of special-round data inside a
// record's live state. Historical records carried mayhem rounds only as a
// flat list of numbers at the record top level; every read path rebuilds
// the object form from that list so clients always observe one shape.
//
// The upgrade is read-time only and never written back. Normalizing an
// already-normalized record is a no-op.
func Normalize(record *model.GameRecord) *model.GameRecord {
	if len(record.LiveState.MayhemRounds) > 0 {
		return record
	}
	if len(record.MayhemRounds) == 0 {
		return record
	}

	mayhem := make([]model.MayhemRound, len(record.MayhemRounds))
	for i, round := range record.MayhemRounds {
		mayhem[i] = model.MayhemRound{Round: round, Multiplier: model.DefaultMayhemMultiplier}
	}
	record.LiveState.MayhemRounds = mayhem
	return record
}

// normalizedCopy applies Normalize to a copy of the record, so the stored
// document is never mutated by a read.
func normalizedCopy(record *model.GameRecord) *model.GameRecord {
	out := *record
	return Normalize(&out)
}
