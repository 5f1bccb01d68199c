package genetics

import "forklion/internal/model"

// DefaultCatalog is the built-in lion catalog. Tier bands follow the
// original trait tables: roughly 60% of draws land in the common band,
// 25% uncommon, 10% rare, 5% legendary.
func DefaultCatalog() *Catalog {
	return &Catalog{Categories: []Category{
		{Name: "body_color", Values: tiered16(
			"brown", "tan", "beige", "gray", "golden", "silver",
			"copper", "bronze", "blue", "purple", "green",
			"pink", "rainbow", "galaxy",
			"holographic", "crystal",
		)},
		{Name: "face_expression", Values: tiered16(
			"happy", "neutral", "curious", "sleepy", "excited", "mischievous",
			"wise", "cool", "surprised", "laughing", "winking",
			"zen", "enlightened", "cosmic",
			"legendary", "divine",
		)},
		{Name: "accessory", Values: tiered16(
			"none", "simple_hat", "bandana", "bow", "sunglasses", "crown",
			"headphones", "monocle", "laser_eyes", "halo", "horns",
			"wizard_hat", "golden_crown", "diamond_chain",
			"jetpack", "wings",
		)},
		{Name: "pattern", Values: tiered16(
			"solid", "spots", "stripes", "gradient", "swirls", "stars",
			"hearts", "diamonds", "fractals", "nebula", "lightning",
			"flames", "aurora", "quantum",
			"cosmic_dust", "void",
		)},
		{Name: "background", Values: tiered16(
			"white", "blue_sky", "green_grass", "sunset", "forest", "beach",
			"mountains", "city", "space", "underwater", "volcano",
			"aurora", "multiverse", "black_hole",
			"dimension_rift", "heaven",
		)},
		{Name: "special", Values: tiered10(
			"none", "sparkles", "glow", "shadow",
			"aura", "particles", "energy",
			"transcendent", "godlike",
			"mythical",
		)},
	}}
}

// tiered16 bands sixteen values as 6 common, 5 uncommon, 3 rare, 2 legendary.
func tiered16(names ...string) []Value {
	return banded(names, 6, 5, 3)
}

// tiered10 bands ten values as 4 common, 3 uncommon, 2 rare, 1 legendary.
func tiered10(names ...string) []Value {
	return banded(names, 4, 3, 2)
}

func banded(names []string, commons, uncommons, rares int) []Value {
	values := make([]Value, len(names))
	for i, name := range names {
		tier := model.RarityLegendary
		switch {
		case i < commons:
			tier = model.RarityCommon
		case i < commons+uncommons:
			tier = model.RarityUncommon
		case i < commons+uncommons+rares:
			tier = model.RarityRare
		}
		values[i] = Value{Name: name, Tier: tier}
	}
	return values
}
