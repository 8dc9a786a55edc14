package enrichment

import (
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"

	"tripserver/geo/types"
)

// Провайдеры не отдают рейтинги и расписания, поэтому эти значения
// синтезируются. Генерация сидируется хэшем внешнего идентификатора:
// одно и то же место всегда получает один и тот же рейтинг и один и тот же
// real_time блок, независимо от процесса и порядка запросов.

// Границы синтетического рейтинга.
const (
	ratingMin = 3.5
	ratingMax = 4.9
)

var busOperators = []string{
	"City Transit",
	"Metro Link",
	"Express Connect",
	"GreenLine Travels",
}

var busTypes = []string{
	"AC Seater",
	"Non-AC Seater",
	"Low Floor",
	"Express",
}

// seedFor преобразует идентификатор записи в сид генератора.
func seedFor(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}

// Rating возвращает детерминированный псевдорейтинг в [3.5, 4.9],
// округленный до одного знака после запятой.
func Rating(id string) float64 {
	r := rand.New(rand.NewSource(seedFor(id)))
	v := ratingMin + r.Float64()*(ratingMax-ratingMin)
	return math.Round(v*10) / 10
}

// RealTimeFor возвращает симулированный блок "реального времени" для
// транспортной записи. Блок помечен Simulated=true и не должен
// преподноситься как живые данные.
func RealTimeFor(id string) *types.RealTimeInfo {
	faker := gofakeit.New(seedFor(id))
	return &types.RealTimeInfo{
		NextBusM:  faker.Number(2, 25),
		Operator:  faker.RandomString(busOperators),
		SeatsLeft: faker.Number(0, 50),
		BusType:   faker.RandomString(busTypes),
		OnTime:    faker.Bool(),
		Simulated: true,
	}
}
