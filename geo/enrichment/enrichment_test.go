package enrichment

import (
	"math"
	"testing"
)

func TestRatingDeterministic(t *testing.T) {
	first := Rating("osm_node_123456")
	second := Rating("osm_node_123456")
	if first != second {
		t.Errorf("Rating не детерминирован: %v != %v", first, second)
	}
}

func TestRatingBounds(t *testing.T) {
	ids := []string{
		"osm_node_1", "osm_node_2", "osm_way_99", "ovp_node_42",
		"ovp_way_777", "local_place_1", "local_place_2", "osm_relation_31337",
	}

	for _, id := range ids {
		rating := Rating(id)
		if rating < ratingMin || rating > ratingMax {
			t.Errorf("Rating(%q) = %v вне диапазона [%v, %v]", id, rating, ratingMin, ratingMax)
		}
		// Один знак после запятой
		if math.Abs(rating*10-math.Round(rating*10)) > 1e-9 {
			t.Errorf("Rating(%q) = %v не округлен до одного знака", id, rating)
		}
	}
}

func TestRatingVariesByID(t *testing.T) {
	distinct := make(map[float64]bool)
	ids := []string{"osm_node_1", "osm_node_2", "osm_node_3", "osm_node_4", "osm_node_5", "osm_node_6"}
	for _, id := range ids {
		distinct[Rating(id)] = true
	}
	if len(distinct) < 2 {
		t.Errorf("рейтинги всех %d идентификаторов совпали: ожидается разброс", len(ids))
	}
}

func TestRealTimeForDeterministic(t *testing.T) {
	first := RealTimeFor("ovp_node_555")
	second := RealTimeFor("ovp_node_555")
	if *first != *second {
		t.Errorf("RealTimeFor не детерминирован: %+v != %+v", first, second)
	}
}

func TestRealTimeForFields(t *testing.T) {
	info := RealTimeFor("osm_node_888")

	if !info.Simulated {
		t.Error("блок real_time должен быть помечен Simulated=true")
	}
	if info.NextBusM < 2 || info.NextBusM > 25 {
		t.Errorf("NextBusM = %d вне диапазона [2, 25]", info.NextBusM)
	}
	if info.SeatsLeft < 0 || info.SeatsLeft > 50 {
		t.Errorf("SeatsLeft = %d вне диапазона [0, 50]", info.SeatsLeft)
	}

	operatorKnown := false
	for _, op := range busOperators {
		if info.Operator == op {
			operatorKnown = true
		}
	}
	if !operatorKnown {
		t.Errorf("Operator = %q не из списка операторов", info.Operator)
	}

	typeKnown := false
	for _, bt := range busTypes {
		if info.BusType == bt {
			typeKnown = true
		}
	}
	if !typeKnown {
		t.Errorf("BusType = %q не из списка типов", info.BusType)
	}
}
