package warapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// The type of icon for a map item, mapped to the number the API uses for it.
type IconType uint16

const (
	IconStaticBase            IconType = 5
	IconStaticBase2           IconType = 6
	IconStaticBase3           IconType = 7
	IconForwardBase1          IconType = 8
	IconForwardBase2          IconType = 9
	IconForwardBase3          IconType = 10
	IconHospital              IconType = 11
	IconVehicleFactory        IconType = 12
	IconArmory                IconType = 13
	IconSupplyStation         IconType = 14
	IconWorkshop              IconType = 15
	IconManufacturingPlant    IconType = 16
	IconRefinery              IconType = 17
	IconShipyard              IconType = 18
	IconTechCenter            IconType = 19
	IconSalvageField          IconType = 20
	IconComponentField        IconType = 21
	IconFuelField             IconType = 22
	IconSulfurField           IconType = 23
	IconWorldMapTent          IconType = 24
	IconTravelTent            IconType = 25
	IconTrainingArea          IconType = 26
	IconSpecialBase           IconType = 27
	IconObservationTower      IconType = 28
	IconFort                  IconType = 29
	IconTroopShip             IconType = 30
	IconSulfurMine            IconType = 32
	IconStorageFacility       IconType = 33
	IconFactory               IconType = 34
	IconGarrisonStation       IconType = 35
	IconAmmoFactory           IconType = 36
	IconRocketSite            IconType = 37
	IconSalvageMine           IconType = 38
	IconConstructionYard      IconType = 39
	IconComponentMine         IconType = 40
	IconOilWell               IconType = 41
	IconRelicBase1            IconType = 45
	IconRelicBase2            IconType = 46
	IconRelicBase3            IconType = 47
	IconMassProductionFactory IconType = 51
	IconSeaport               IconType = 52
	IconCoastalGun            IconType = 53
	IconSoulFactory           IconType = 54
	IconTownBase1             IconType = 56
	IconTownBase2             IconType = 57
	IconTownBase3             IconType = 58
	IconStormCannon           IconType = 59
	IconIntelCenter           IconType = 60
)

// Every known icon type. Tags missing from this table fail to decode.
var iconTypeNames = map[IconType]string{
	IconStaticBase:            "StaticBase",
	IconStaticBase2:           "StaticBase2",
	IconStaticBase3:           "StaticBase3",
	IconForwardBase1:          "ForwardBase1",
	IconForwardBase2:          "ForwardBase2",
	IconForwardBase3:          "ForwardBase3",
	IconHospital:              "Hospital",
	IconVehicleFactory:        "VehicleFactory",
	IconArmory:                "Armory",
	IconSupplyStation:         "SupplyStation",
	IconWorkshop:              "Workshop",
	IconManufacturingPlant:    "ManufacturingPlant",
	IconRefinery:              "Refinery",
	IconShipyard:              "Shipyard",
	IconTechCenter:            "TechCenter",
	IconSalvageField:          "SalvageField",
	IconComponentField:        "ComponentField",
	IconFuelField:             "FuelField",
	IconSulfurField:           "SulfurField",
	IconWorldMapTent:          "WorldMapTent",
	IconTravelTent:            "TravelTent",
	IconTrainingArea:          "TrainingArea",
	IconSpecialBase:           "SpecialBase",
	IconObservationTower:      "ObservationTower",
	IconFort:                  "Fort",
	IconTroopShip:             "TroopShip",
	IconSulfurMine:            "SulfurMine",
	IconStorageFacility:       "StorageFacility",
	IconFactory:               "Factory",
	IconGarrisonStation:       "GarrisonStation",
	IconAmmoFactory:           "AmmoFactory",
	IconRocketSite:            "RocketSite",
	IconSalvageMine:           "SalvageMine",
	IconConstructionYard:      "ConstructionYard",
	IconComponentMine:         "ComponentMine",
	IconOilWell:               "OilWell",
	IconRelicBase1:            "RelicBase1",
	IconRelicBase2:            "RelicBase2",
	IconRelicBase3:            "RelicBase3",
	IconMassProductionFactory: "MassProductionFactory",
	IconSeaport:               "Seaport",
	IconCoastalGun:            "CoastalGun",
	IconSoulFactory:           "SoulFactory",
	IconTownBase1:             "TownBase1",
	IconTownBase2:             "TownBase2",
	IconTownBase3:             "TownBase3",
	IconStormCannon:           "StormCannon",
	IconIntelCenter:           "IntelCenter",
}

func (t *IconType) UnmarshalJSON(data []byte) error {
	var tag uint16
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("invalid icon type %s: %w", data, err)
	}

	if _, ok := iconTypeNames[IconType(tag)]; !ok {
		return fmt.Errorf("unknown icon type: %d", tag)
	}

	*t = IconType(tag)
	return nil
}

func (t IconType) IsValid() bool {
	_, ok := iconTypeNames[t]
	return ok
}

func (t IconType) String() string {
	if name, ok := iconTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("IconType(%d)", uint16(t))
}

// Name split into words, e.g. "Mass Production Factory".
func (t IconType) Label() string {
	return strings.Join(lo.Words(t.String()), " ")
}

// Town halls and relic bases, the structures that count towards victory and change hands.
func (t IconType) IsTownHall() bool {
	switch t {
	case IconTownBase1, IconTownBase2, IconTownBase3, IconRelicBase1, IconRelicBase2, IconRelicBase3:
		return true
	}

	return false
}
