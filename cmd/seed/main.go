package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"mobile-shop/config"
	"mobile-shop/models"
)

var brands = []string{"Samsung", "Apple", "Xiaomi", "OnePlus", "Google", "Motorola", "Oppo", "Vivo", "Realme", "Nokia"}

var lines = map[string][]string{
	"Samsung":  {"Galaxy S", "Galaxy A", "Galaxy M"},
	"Apple":    {"iPhone"},
	"Xiaomi":   {"Redmi Note", "Mi", "Poco"},
	"OnePlus":  {"Nord", "Ace"},
	"Google":   {"Pixel"},
	"Motorola": {"Edge", "Moto G"},
	"Oppo":     {"Reno", "Find"},
	"Vivo":     {"V", "Y"},
	"Realme":   {"GT", "Narzo"},
	"Nokia":    {"G", "X"},
}

var processors = []string{"Snapdragon 8 Gen 2", "Snapdragon 7 Gen 1", "Dimensity 9200", "Dimensity 8100", "A16 Bionic", "Tensor G3", "Exynos 2200"}
var ramOptions = []int{4, 6, 8, 12, 16}
var storageOptions = []int{64, 128, 256, 512}
var cameraOptions = []string{"12MP + 12MP", "50MP + 12MP + 10MP", "108MP + 12MP", "64MP + 8MP + 2MP", "200MP + 50MP + 12MP"}
var batteryOptions = []int{4000, 4500, 5000, 5500, 6000}
var screenOptions = []string{"6.1 inch OLED", "6.4 inch AMOLED", "6.7 inch Super AMOLED", "6.8 inch LTPO AMOLED"}

// priceFor keeps generated prices inside the band where every shipping
// tier and the discount threshold are reachable from small carts.
func priceFor(rng *rand.Rand) int64 {
	price := 200 + rng.Int63n(1801)
	return price - price%50
}

func buildPhone(rng *rand.Rand, seq int) (string, string, map[string]interface{}) {
	brand := brands[rng.Intn(len(brands))]
	line := lines[brand][rng.Intn(len(lines[brand]))]
	title := fmt.Sprintf("%s %s %d", brand, line, 10+rng.Intn(90))

	ram := ramOptions[rng.Intn(len(ramOptions))]
	storage := storageOptions[rng.Intn(len(storageOptions))]

	specs := map[string]interface{}{
		"brand":     brand,
		"processor": processors[rng.Intn(len(processors))],
		"ram":       fmt.Sprintf("%dGB", ram),
		"storage":   fmt.Sprintf("%dGB", storage),
		"camera":    cameraOptions[rng.Intn(len(cameraOptions))],
		"battery":   fmt.Sprintf("%dmAh", batteryOptions[rng.Intn(len(batteryOptions))]),
		"screen":    screenOptions[rng.Intn(len(screenOptions))],
	}

	description := fmt.Sprintf("%s with %dGB RAM, %dGB storage, %s display and %s. Phone #%d of the generated catalog.",
		title, ram, storage, specs["screen"], specs["battery"], seq)

	return title, description, specs
}

func main() {
	count := flag.Int("count", 30, "number of phones to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	config.LoadConfig()
	models.InitDB()
	defer models.CloseDB()

	rng := rand.New(rand.NewSource(*seed))
	ctx := context.Background()
	now := time.Now()

	inserted := 0
	for i := 1; i <= *count; i++ {
		title, description, specs := buildPhone(rng, i)
		specsJSON, _ := json.Marshal(specs)

		var productID int
		err := models.DB.QueryRow(ctx,
			`INSERT INTO products (title, description, category, price, stock, specifications, is_active, created_at, updated_at)
			 VALUES ($1, $2, 'mobiles', $3, $4, $5, true, $6, $6) RETURNING id`,
			title, description, priceFor(rng), 5+rng.Intn(46), specsJSON, now).Scan(&productID)
		if err != nil {
			log.Printf("skipping %q: %v", title, err)
			continue
		}

		imageCount := 1 + rng.Intn(3)
		for j := 0; j < imageCount; j++ {
			url := fmt.Sprintf("https://placehold.co/600x800?text=%s+%d", "Phone", productID)
			models.DB.Exec(ctx,
				"INSERT INTO product_images (product_id, url, display_order) VALUES ($1, $2, $3)",
				productID, url, j)
		}
		inserted++
	}

	log.Printf("Seeded %d products", inserted)
}
