package dbc

// Record layouts for the 3.3.5 client. Localized string columns hold 16
// locale slots plus a flags word; only the first (enUS) slot is mapped.

// AreaTable is a row of AreaTable.dbc.
type AreaTable struct {
	ID               uint32 `json:"id"`
	MapID            uint32 `json:"map_id"`
	ParentAreaID     uint32 `json:"parent_area_id"`
	ExploreFlag      uint32 `json:"explore_flag"`
	Flags            uint32 `json:"flags"`
	SoundAmbienceID  uint32 `json:"sound_ambience_id"`
	ZoneMusicID      uint32 `json:"zone_music_id"`
	ZoneIntroMusicID uint32 `json:"zone_intro_music_id"`
	AreaLevel        uint32 `json:"area_level"`
	AreaName         string `json:"area_name"`
	FactionGroupMask uint32 `json:"faction_group_mask"`
}

var AreaTableSchema = Schema[AreaTable]{
	Name: "AreaTable.dbc",
	Columns: []Column[AreaTable]{
		Uint32(0, "id", func(r *AreaTable) *uint32 { return &r.ID }),
		Uint32(1, "map_id", func(r *AreaTable) *uint32 { return &r.MapID }),
		Uint32(2, "parent_area_id", func(r *AreaTable) *uint32 { return &r.ParentAreaID }),
		Uint32(3, "explore_flag", func(r *AreaTable) *uint32 { return &r.ExploreFlag }),
		Uint32(4, "flags", func(r *AreaTable) *uint32 { return &r.Flags }),
		Uint32(7, "sound_ambience_id", func(r *AreaTable) *uint32 { return &r.SoundAmbienceID }),
		Uint32(8, "zone_music_id", func(r *AreaTable) *uint32 { return &r.ZoneMusicID }),
		Uint32(9, "zone_intro_music_id", func(r *AreaTable) *uint32 { return &r.ZoneIntroMusicID }),
		Uint32(10, "area_level", func(r *AreaTable) *uint32 { return &r.AreaLevel }),
		String(11, "area_name", func(r *AreaTable) *string { return &r.AreaName }),
		Uint32(28, "faction_group_mask", func(r *AreaTable) *uint32 { return &r.FactionGroupMask }),
	},
}

// LightParams is a row of LightParams.dbc.
type LightParams struct {
	ID                uint32  `json:"id"`
	HighlightSky      bool    `json:"highlight_sky"`
	LightSkyboxID     uint32  `json:"light_skybox_id"`
	CloudTypeID       uint32  `json:"cloud_type_id"`
	Glow              float32 `json:"glow"`
	WaterShallowAlpha float32 `json:"water_shallow_alpha"`
	WaterDeepAlpha    float32 `json:"water_deep_alpha"`
	OceanShallowAlpha float32 `json:"ocean_shallow_alpha"`
	OceanDeepAlpha    float32 `json:"ocean_deep_alpha"`
}

var LightParamsSchema = Schema[LightParams]{
	Name: "LightParams.dbc",
	Columns: []Column[LightParams]{
		Uint32(0, "id", func(r *LightParams) *uint32 { return &r.ID }),
		Bool(1, "highlight_sky", func(r *LightParams) *bool { return &r.HighlightSky }),
		Uint32(2, "light_skybox_id", func(r *LightParams) *uint32 { return &r.LightSkyboxID }),
		Uint32(3, "cloud_type_id", func(r *LightParams) *uint32 { return &r.CloudTypeID }),
		Float32(4, "glow", func(r *LightParams) *float32 { return &r.Glow }),
		Float32(5, "water_shallow_alpha", func(r *LightParams) *float32 { return &r.WaterShallowAlpha }),
		Float32(6, "water_deep_alpha", func(r *LightParams) *float32 { return &r.WaterDeepAlpha }),
		Float32(7, "ocean_shallow_alpha", func(r *LightParams) *float32 { return &r.OceanShallowAlpha }),
		Float32(8, "ocean_deep_alpha", func(r *LightParams) *float32 { return &r.OceanDeepAlpha }),
	},
}

// Light is a row of Light.dbc.
type Light struct {
	ID            uint32     `json:"id"`
	MapID         uint32     `json:"map_id"`
	Position      [3]float32 `json:"position"`
	FalloffStart  float32    `json:"falloff_start"`
	FalloffEnd    float32    `json:"falloff_end"`
	LightParamIDs [8]uint32  `json:"light_param_ids"`
}

var LightSchema = Schema[Light]{
	Name: "Light.dbc",
	Columns: []Column[Light]{
		Uint32(0, "id", func(r *Light) *uint32 { return &r.ID }),
		Uint32(1, "map_id", func(r *Light) *uint32 { return &r.MapID }),
		Float32s(2, "position", func(r *Light) []float32 { return r.Position[:] }),
		Float32(5, "falloff_start", func(r *Light) *float32 { return &r.FalloffStart }),
		Float32(6, "falloff_end", func(r *Light) *float32 { return &r.FalloffEnd }),
		Uint32s(7, "light_param_ids", func(r *Light) []uint32 { return r.LightParamIDs[:] }),
	},
}

// LightSkybox is a row of LightSkybox.dbc.
type LightSkybox struct {
	ID    uint32 `json:"id"`
	Name  string `json:"name"`
	Flags uint32 `json:"flags"`
}

var LightSkyboxSchema = Schema[LightSkybox]{
	Name: "LightSkybox.dbc",
	Columns: []Column[LightSkybox]{
		Uint32(0, "id", func(r *LightSkybox) *uint32 { return &r.ID }),
		String(1, "name", func(r *LightSkybox) *string { return &r.Name }),
		Uint32(2, "flags", func(r *LightSkybox) *uint32 { return &r.Flags }),
	},
}

// Map is a row of Map.dbc.
type Map struct {
	ID               uint32  `json:"id"`
	Directory        string  `json:"directory"`
	InstanceType     uint32  `json:"instance_type"`
	Flags            uint32  `json:"flags"`
	PVP              uint32  `json:"pvp"`
	MapName          string  `json:"map_name"`
	AreaTableID      uint32  `json:"area_table_id"`
	LoadingScreenID  uint32  `json:"loading_screen_id"`
	MinimapIconScale float32 `json:"minimap_icon_scale"`
	CorpseMapID      int32   `json:"corpse_map_id"`
	CorpseX          float32 `json:"corpse_x"`
	CorpseY          float32 `json:"corpse_y"`
	TimeOfDay        int32   `json:"time_of_day_override"`
	ExpansionID      uint32  `json:"expansion_id"`
	RaidOffset       uint32  `json:"raid_offset"`
	MaxPlayers       uint32  `json:"max_players"`
}

var MapSchema = Schema[Map]{
	Name: "Map.dbc",
	Columns: []Column[Map]{
		Uint32(0, "id", func(r *Map) *uint32 { return &r.ID }),
		String(1, "directory", func(r *Map) *string { return &r.Directory }),
		Uint32(2, "instance_type", func(r *Map) *uint32 { return &r.InstanceType }),
		Uint32(3, "flags", func(r *Map) *uint32 { return &r.Flags }),
		Uint32(4, "pvp", func(r *Map) *uint32 { return &r.PVP }),
		String(5, "map_name", func(r *Map) *string { return &r.MapName }),
		Uint32(22, "area_table_id", func(r *Map) *uint32 { return &r.AreaTableID }),
		Uint32(57, "loading_screen_id", func(r *Map) *uint32 { return &r.LoadingScreenID }),
		Float32(58, "minimap_icon_scale", func(r *Map) *float32 { return &r.MinimapIconScale }),
		Int32(59, "corpse_map_id", func(r *Map) *int32 { return &r.CorpseMapID }),
		Float32(60, "corpse_x", func(r *Map) *float32 { return &r.CorpseX }),
		Float32(61, "corpse_y", func(r *Map) *float32 { return &r.CorpseY }),
		Int32(62, "time_of_day_override", func(r *Map) *int32 { return &r.TimeOfDay }),
		Uint32(63, "expansion_id", func(r *Map) *uint32 { return &r.ExpansionID }),
		Uint32(64, "raid_offset", func(r *Map) *uint32 { return &r.RaidOffset }),
		Uint32(65, "max_players", func(r *Map) *uint32 { return &r.MaxPlayers }),
	},
}

// LoadingScreen is a row of LoadingScreens.dbc.
type LoadingScreen struct {
	ID            uint32 `json:"id"`
	Name          string `json:"name"`
	FileName      string `json:"file_name"`
	HasWideScreen bool   `json:"has_wide_screen"`
}

var LoadingScreensSchema = Schema[LoadingScreen]{
	Name: "LoadingScreens.dbc",
	Columns: []Column[LoadingScreen]{
		Uint32(0, "id", func(r *LoadingScreen) *uint32 { return &r.ID }),
		String(1, "name", func(r *LoadingScreen) *string { return &r.Name }),
		String(2, "file_name", func(r *LoadingScreen) *string { return &r.FileName }),
		Bool(3, "has_wide_screen", func(r *LoadingScreen) *bool { return &r.HasWideScreen }),
	},
}

// SpellIcon is a row of SpellIcon.dbc.
type SpellIcon struct {
	ID              uint32 `json:"id"`
	TextureFilename string `json:"texture_filename"`
}

var SpellIconSchema = Schema[SpellIcon]{
	Name: "SpellIcon.dbc",
	Columns: []Column[SpellIcon]{
		Uint32(0, "id", func(r *SpellIcon) *uint32 { return &r.ID }),
		String(1, "texture_filename", func(r *SpellIcon) *string { return &r.TextureFilename }),
	},
}

// SpellVisualEffectName is a row of SpellVisualEffectName.dbc.
type SpellVisualEffectName struct {
	ID              uint32  `json:"id"`
	Name            string  `json:"name"`
	FileName        string  `json:"file_name"`
	AreaEffectSize  float32 `json:"area_effect_size"`
	Scale           float32 `json:"scale"`
	MinAllowedScale float32 `json:"min_allowed_scale"`
	MaxAllowedScale float32 `json:"max_allowed_scale"`
}

var SpellVisualEffectNameSchema = Schema[SpellVisualEffectName]{
	Name: "SpellVisualEffectName.dbc",
	Columns: []Column[SpellVisualEffectName]{
		Uint32(0, "id", func(r *SpellVisualEffectName) *uint32 { return &r.ID }),
		String(1, "name", func(r *SpellVisualEffectName) *string { return &r.Name }),
		String(2, "file_name", func(r *SpellVisualEffectName) *string { return &r.FileName }),
		Float32(3, "area_effect_size", func(r *SpellVisualEffectName) *float32 { return &r.AreaEffectSize }),
		Float32(4, "scale", func(r *SpellVisualEffectName) *float32 { return &r.Scale }),
		Float32(5, "min_allowed_scale", func(r *SpellVisualEffectName) *float32 { return &r.MinAllowedScale }),
		Float32(6, "max_allowed_scale", func(r *SpellVisualEffectName) *float32 { return &r.MaxAllowedScale }),
	},
}

// GroundEffectTexture is a row of GroundEffectTexture.dbc.
type GroundEffectTexture struct {
	ID            uint32    `json:"id"`
	DoodadIDs     [4]uint32 `json:"doodad_ids"`
	DoodadWeights [4]uint32 `json:"doodad_weights"`
	Density       uint32    `json:"density"`
	SoundID       uint32    `json:"sound_id"`
}

var GroundEffectTextureSchema = Schema[GroundEffectTexture]{
	Name: "GroundEffectTexture.dbc",
	Columns: []Column[GroundEffectTexture]{
		Uint32(0, "id", func(r *GroundEffectTexture) *uint32 { return &r.ID }),
		Uint32s(1, "doodad_ids", func(r *GroundEffectTexture) []uint32 { return r.DoodadIDs[:] }),
		Uint32s(5, "doodad_weights", func(r *GroundEffectTexture) []uint32 { return r.DoodadWeights[:] }),
		Uint32(9, "density", func(r *GroundEffectTexture) *uint32 { return &r.Density }),
		Uint32(10, "sound_id", func(r *GroundEffectTexture) *uint32 { return &r.SoundID }),
	},
}

// GroundEffectDoodad is a row of GroundEffectDoodad.dbc.
type GroundEffectDoodad struct {
	ID         uint32 `json:"id"`
	DoodadPath string `json:"doodad_path"`
	Flags      uint32 `json:"flags"`
}

var GroundEffectDoodadSchema = Schema[GroundEffectDoodad]{
	Name: "GroundEffectDoodad.dbc",
	Columns: []Column[GroundEffectDoodad]{
		Uint32(0, "id", func(r *GroundEffectDoodad) *uint32 { return &r.ID }),
		String(1, "doodad_path", func(r *GroundEffectDoodad) *string { return &r.DoodadPath }),
		Uint32(2, "flags", func(r *GroundEffectDoodad) *uint32 { return &r.Flags }),
	},
}

// GameObjectDisplayInfo is a row of GameObjectDisplayInfo.dbc.
type GameObjectDisplayInfo struct {
	ID                    uint32     `json:"id"`
	ModelName             string     `json:"model_name"`
	SoundIDs              [10]uint32 `json:"sound_ids"`
	GeoBoxMin             [3]float32 `json:"geo_box_min"`
	GeoBoxMax             [3]float32 `json:"geo_box_max"`
	ObjectEffectPackageID uint32     `json:"object_effect_package_id"`
}

var GameObjectDisplayInfoSchema = Schema[GameObjectDisplayInfo]{
	Name: "GameObjectDisplayInfo.dbc",
	Columns: []Column[GameObjectDisplayInfo]{
		Uint32(0, "id", func(r *GameObjectDisplayInfo) *uint32 { return &r.ID }),
		String(1, "model_name", func(r *GameObjectDisplayInfo) *string { return &r.ModelName }),
		Uint32s(2, "sound_ids", func(r *GameObjectDisplayInfo) []uint32 { return r.SoundIDs[:] }),
		Float32s(12, "geo_box_min", func(r *GameObjectDisplayInfo) []float32 { return r.GeoBoxMin[:] }),
		Float32s(15, "geo_box_max", func(r *GameObjectDisplayInfo) []float32 { return r.GeoBoxMax[:] }),
		Uint32(18, "object_effect_package_id", func(r *GameObjectDisplayInfo) *uint32 { return &r.ObjectEffectPackageID }),
	},
}

// BattlemasterList is a row of BattlemasterList.dbc.
type BattlemasterList struct {
	ID                uint32    `json:"id"`
	MapIDs            [8]uint32 `json:"map_ids"`
	InstanceType      uint32    `json:"instance_type"`
	GroupsAllowed     bool      `json:"groups_allowed"`
	Name              string    `json:"name"`
	MaxGroupSize      uint32    `json:"max_group_size"`
	HolidayWorldState uint32    `json:"holiday_world_state"`
	MinLevel          uint32    `json:"min_level"`
	MaxLevel          uint32    `json:"max_level"`
}

var BattlemasterListSchema = Schema[BattlemasterList]{
	Name: "BattlemasterList.dbc",
	Columns: []Column[BattlemasterList]{
		Uint32(0, "id", func(r *BattlemasterList) *uint32 { return &r.ID }),
		Uint32s(1, "map_ids", func(r *BattlemasterList) []uint32 { return r.MapIDs[:] }),
		Uint32(9, "instance_type", func(r *BattlemasterList) *uint32 { return &r.InstanceType }),
		Bool(10, "groups_allowed", func(r *BattlemasterList) *bool { return &r.GroupsAllowed }),
		String(11, "name", func(r *BattlemasterList) *string { return &r.Name }),
		Uint32(28, "max_group_size", func(r *BattlemasterList) *uint32 { return &r.MaxGroupSize }),
		Uint32(29, "holiday_world_state", func(r *BattlemasterList) *uint32 { return &r.HolidayWorldState }),
		Uint32(30, "min_level", func(r *BattlemasterList) *uint32 { return &r.MinLevel }),
		Uint32(31, "max_level", func(r *BattlemasterList) *uint32 { return &r.MaxLevel }),
	},
}

// PvpDifficulty is a row of PvpDifficulty.dbc.
type PvpDifficulty struct {
	ID         uint32 `json:"id"`
	MapID      uint32 `json:"map_id"`
	RangeIndex uint32 `json:"range_index"`
	MinLevel   uint32 `json:"min_level"`
	MaxLevel   uint32 `json:"max_level"`
	Difficulty uint32 `json:"difficulty"`
}

var PvpDifficultySchema = Schema[PvpDifficulty]{
	Name: "PvpDifficulty.dbc",
	Columns: []Column[PvpDifficulty]{
		Uint32(0, "id", func(r *PvpDifficulty) *uint32 { return &r.ID }),
		Uint32(1, "map_id", func(r *PvpDifficulty) *uint32 { return &r.MapID }),
		Uint32(2, "range_index", func(r *PvpDifficulty) *uint32 { return &r.RangeIndex }),
		Uint32(3, "min_level", func(r *PvpDifficulty) *uint32 { return &r.MinLevel }),
		Uint32(4, "max_level", func(r *PvpDifficulty) *uint32 { return &r.MaxLevel }),
		Uint32(5, "difficulty", func(r *PvpDifficulty) *uint32 { return &r.Difficulty }),
	},
}

// Talent is a row of Talent.dbc.
type Talent struct {
	ID              uint32    `json:"id"`
	TabID           uint32    `json:"tab_id"`
	TierID          uint32    `json:"tier_id"`
	ColumnIndex     uint32    `json:"column_index"`
	SpellRanks      [9]uint32 `json:"spell_ranks"`
	PrereqTalents   [3]uint32 `json:"prereq_talents"`
	PrereqRanks     [3]uint32 `json:"prereq_ranks"`
	Flags           uint32    `json:"flags"`
	RequiredSpellID uint32    `json:"required_spell_id"`
}

var TalentSchema = Schema[Talent]{
	Name: "Talent.dbc",
	Columns: []Column[Talent]{
		Uint32(0, "id", func(r *Talent) *uint32 { return &r.ID }),
		Uint32(1, "tab_id", func(r *Talent) *uint32 { return &r.TabID }),
		Uint32(2, "tier_id", func(r *Talent) *uint32 { return &r.TierID }),
		Uint32(3, "column_index", func(r *Talent) *uint32 { return &r.ColumnIndex }),
		Uint32s(4, "spell_ranks", func(r *Talent) []uint32 { return r.SpellRanks[:] }),
		Uint32s(13, "prereq_talents", func(r *Talent) []uint32 { return r.PrereqTalents[:] }),
		Uint32s(16, "prereq_ranks", func(r *Talent) []uint32 { return r.PrereqRanks[:] }),
		Uint32(19, "flags", func(r *Talent) *uint32 { return &r.Flags }),
		Uint32(20, "required_spell_id", func(r *Talent) *uint32 { return &r.RequiredSpellID }),
	},
}

// TalentTab is a row of TalentTab.dbc.
type TalentTab struct {
	ID             uint32 `json:"id"`
	Name           string `json:"name"`
	SpellIconID    uint32 `json:"spell_icon_id"`
	RaceMask       uint32 `json:"race_mask"`
	ClassMask      uint32 `json:"class_mask"`
	PetTalentMask  uint32 `json:"pet_talent_mask"`
	OrderIndex     uint32 `json:"order_index"`
	BackgroundFile string `json:"background_file"`
}

var TalentTabSchema = Schema[TalentTab]{
	Name: "TalentTab.dbc",
	Columns: []Column[TalentTab]{
		Uint32(0, "id", func(r *TalentTab) *uint32 { return &r.ID }),
		String(1, "name", func(r *TalentTab) *string { return &r.Name }),
		Uint32(18, "spell_icon_id", func(r *TalentTab) *uint32 { return &r.SpellIconID }),
		Uint32(19, "race_mask", func(r *TalentTab) *uint32 { return &r.RaceMask }),
		Uint32(20, "class_mask", func(r *TalentTab) *uint32 { return &r.ClassMask }),
		Uint32(21, "pet_talent_mask", func(r *TalentTab) *uint32 { return &r.PetTalentMask }),
		Uint32(22, "order_index", func(r *TalentTab) *uint32 { return &r.OrderIndex }),
		String(23, "background_file", func(r *TalentTab) *string { return &r.BackgroundFile }),
	},
}
