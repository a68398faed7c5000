//go:build datagen
// +build datagen

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"familygraph/src/domain/entities"
	"familygraph/src/helper/env"
	"familygraph/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeederMember é o membro ainda sem id, identificado pela posição dentro
// do bundle; os ids reais só existem depois do insert.
type SeederMember struct {
	FirstName  string
	LastName   string
	Gender     string
	BirthDate  time.Time
	DeathDate  *time.Time
	BirthPlace string
	Biography  string
}

// SeederEdge referencia membros pelo índice dentro do bundle.
type SeederEdge struct {
	FromIndex    int
	ToIndex      int
	RelationType entities.RelationType
}

type SeederEvent struct {
	MemberIndex int
	Title       string
	EventType   entities.EventType
	EventDate   time.Time
	Location    string
}

// FamilyBundle é uma família completa: casal, filhos e os eventos de
// timeline de cada um, com as arestas já sintetizadas nas duas direções.
type FamilyBundle struct {
	Members []SeederMember
	Edges   []SeederEdge
	Events  []SeederEvent
}

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_WRITE_HOST")
	dbPort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := 100
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	numFamilies := flag.Int("families", -1, "Número de famílias a serem criadas. Use -1 para infinito.")
	bulkSize := flag.Int("bulk-size", 500, "Famílias por transação")
	maxChildren := flag.Int("max-children", 4, "Máximo de filhos por casal")
	numConsumers := flag.Int("consumers", 8, "Workers de insert em paralelo")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	dataChan := make(chan FamilyBundle, (*bulkSize)*(*numConsumers)*2)

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed := atomic.LoadInt64(&totalProcessed)
				errors := atomic.LoadInt64(&totalErrors)
				elapsed := time.Since(startTime)
				rate := float64(processed) / elapsed.Seconds()

				fmt.Printf("Families: %d | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
					processed, errors, rate, elapsed.Round(time.Second))
			}
		}
	}()

	for i := 0; i < *numConsumers; i++ {
		wg.Add(1)
		go consumer(ctx, &wg, db, dataChan, *bulkSize, i+1, &totalProcessed, &totalErrors)
	}

	wg.Add(1)
	go producer(ctx, &wg, dataChan, *numFamilies, *maxChildren)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)
	errors := atomic.LoadInt64(&totalErrors)

	fmt.Printf("\nSeeding finished!\n")
	fmt.Printf("Total families: %d\n", processed)
	fmt.Printf("Total errors: %d\n", errors)
	fmt.Printf("Total time: %v\n", elapsed.Round(time.Second))
}

func producer(ctx context.Context, wg *sync.WaitGroup, dataChan chan<- FamilyBundle, numFamilies, maxChildren int) {
	defer wg.Done()
	defer close(dataChan)

	isInfinite := numFamilies == -1
	familyCount := 0

	for isInfinite || familyCount < numFamilies {
		select {
		case <-ctx.Done():
			fmt.Println("Producer stopping.")
			return
		default:
			bundle := generateFakeFamily(maxChildren)

			select {
			case dataChan <- bundle:
				familyCount++
				if familyCount%1000 == 0 {
					fmt.Printf("Generated %d families\n", familyCount)
				}
			case <-ctx.Done():
				return
			}
		}
	}
}

func consumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan FamilyBundle, bulkSize, consumerID int, totalProcessed, totalErrors *int64) {
	defer wg.Done()
	log.Printf("Consumer %d started", consumerID)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	bundles := make([]FamilyBundle, 0, bulkSize)

	flush := func() {
		if len(bundles) == 0 {
			return
		}
		if err := bulkInsert(ctx, db, bundles); err != nil {
			log.Printf("Consumer %d: bulk insert error: %v", consumerID, err)
			atomic.AddInt64(totalErrors, 1)
		} else {
			atomic.AddInt64(totalProcessed, int64(len(bundles)))
		}
		bundles = make([]FamilyBundle, 0, bulkSize)
	}

	for {
		select {
		case b, ok := <-dataChan:
			if !ok {
				flush()
				log.Printf("Consumer %d stopping.", consumerID)
				return
			}

			bundles = append(bundles, b)
			if len(bundles) >= bulkSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-ctx.Done():
			log.Printf("Consumer %d received stop signal.", consumerID)
			return
		}
	}
}

func bulkInsert(ctx context.Context, db *pgxpool.Pool, bundles []FamilyBundle) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. INSERIR TODOS OS MEMBROS DE UMA VEZ, guardando o offset de cada
	// bundle para traduzir índices em ids depois.
	var firstNames, lastNames, genders, birthPlaces, biographies []string
	var birthDates []time.Time
	var deathDates []*time.Time
	offsets := make([]int, len(bundles))

	total := 0
	for i, b := range bundles {
		offsets[i] = total
		for _, m := range b.Members {
			firstNames = append(firstNames, m.FirstName)
			lastNames = append(lastNames, m.LastName)
			genders = append(genders, m.Gender)
			birthDates = append(birthDates, m.BirthDate)
			deathDates = append(deathDates, m.DeathDate)
			birthPlaces = append(birthPlaces, m.BirthPlace)
			biographies = append(biographies, m.Biography)
		}
		total += len(b.Members)
	}

	insertSQL := `
		INSERT INTO family_members (first_name, last_name, gender, birth_date, death_date, birth_place, biography)
		SELECT unnest($1::text[]), unnest($2::text[]), unnest($3::text[]), unnest($4::date[]), unnest($5::date[]), unnest($6::text[]), unnest($7::text[])
		RETURNING id
	`

	idRows, err := tx.Query(ctx, insertSQL, firstNames, lastNames, genders, birthDates, deathDates, birthPlaces, biographies)
	if err != nil {
		return fmt.Errorf("failed to insert members: %w", err)
	}

	memberIDs := make([]int64, 0, total)
	for idRows.Next() {
		var id int64
		if err := idRows.Scan(&id); err != nil {
			idRows.Close()
			return err
		}
		memberIDs = append(memberIDs, id)
	}
	idRows.Close()
	if len(memberIDs) != total {
		return fmt.Errorf("expected %d member ids, got %d", total, len(memberIDs))
	}

	// 2. INSERIR TODAS AS ARESTAS DE UMA VEZ
	var fromIDs, toIDs []int64
	var relTypes []string
	for i, b := range bundles {
		for _, e := range b.Edges {
			fromIDs = append(fromIDs, memberIDs[offsets[i]+e.FromIndex])
			toIDs = append(toIDs, memberIDs[offsets[i]+e.ToIndex])
			relTypes = append(relTypes, string(e.RelationType))
		}
	}

	if len(fromIDs) > 0 {
		edgeSQL := `
			INSERT INTO relationships (from_member_id, to_member_id, relation_type)
			SELECT unnest($1::bigint[]), unnest($2::bigint[]), unnest($3::text[])
			ON CONFLICT (from_member_id, to_member_id, relation_type) DO NOTHING
		`
		if _, err := tx.Exec(ctx, edgeSQL, fromIDs, toIDs, relTypes); err != nil {
			return fmt.Errorf("failed to insert relationships: %w", err)
		}
	}

	// 3. EVENTOS DE TIMELINE
	var eventMemberIDs []int64
	var titles, eventTypes, locations []string
	var eventDates []time.Time
	for i, b := range bundles {
		for _, ev := range b.Events {
			eventMemberIDs = append(eventMemberIDs, memberIDs[offsets[i]+ev.MemberIndex])
			titles = append(titles, ev.Title)
			eventTypes = append(eventTypes, string(ev.EventType))
			eventDates = append(eventDates, ev.EventDate)
			locations = append(locations, ev.Location)
		}
	}

	if len(eventMemberIDs) > 0 {
		eventSQL := `
			INSERT INTO timeline_events (member_id, title, event_type, event_date, location)
			SELECT unnest($1::bigint[]), unnest($2::text[]), unnest($3::text[]), unnest($4::date[]), unnest($5::text[])
		`
		if _, err := tx.Exec(ctx, eventSQL, eventMemberIDs, titles, eventTypes, eventDates, locations); err != nil {
			return fmt.Errorf("failed to insert timeline events: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// generateFakeFamily monta um casal com filhos: arestas spouse entre o
// casal, parent/child entre cada pai e cada filho, sempre nas duas
// direções, mais eventos de nascimento e casamento.
func generateFakeFamily(maxChildren int) FamilyBundle {
	lastName := faker.LastName()
	city := faker.GetRealAddress().City

	husbandBirth := randomDate(1940, 1975)
	wifeBirth := randomDate(1940, 1975)
	marriageDate := husbandBirth.AddDate(20+rand.Intn(15), rand.Intn(12), 0)

	members := []SeederMember{
		{
			FirstName:  faker.FirstNameMale(),
			LastName:   lastName,
			Gender:     "male",
			BirthDate:  husbandBirth,
			BirthPlace: city,
			Biography:  faker.Sentence(),
		},
		{
			FirstName:  faker.FirstNameFemale(),
			LastName:   lastName,
			Gender:     "female",
			BirthDate:  wifeBirth,
			BirthPlace: faker.GetRealAddress().City,
			Biography:  faker.Sentence(),
		},
	}

	edges := []SeederEdge{
		{FromIndex: 0, ToIndex: 1, RelationType: entities.RelationSpouse},
		{FromIndex: 1, ToIndex: 0, RelationType: entities.RelationSpouse},
	}

	events := []SeederEvent{
		{MemberIndex: 0, Title: "Born in " + city, EventType: entities.EventBirth, EventDate: husbandBirth, Location: city},
		{MemberIndex: 0, Title: "Married " + members[1].FirstName, EventType: entities.EventMarriage, EventDate: marriageDate, Location: city},
		{MemberIndex: 1, Title: "Married " + members[0].FirstName, EventType: entities.EventMarriage, EventDate: marriageDate, Location: city},
	}

	numChildren := rand.Intn(maxChildren + 1)
	for c := 0; c < numChildren; c++ {
		childBirth := marriageDate.AddDate(1+c, rand.Intn(12), rand.Intn(28))
		gender := "female"
		firstName := faker.FirstNameFemale()
		if rand.Intn(2) == 0 {
			gender = "male"
			firstName = faker.FirstNameMale()
		}

		childIndex := len(members)
		members = append(members, SeederMember{
			FirstName:  firstName,
			LastName:   lastName,
			Gender:     gender,
			BirthDate:  childBirth,
			BirthPlace: city,
		})

		for parentIndex := 0; parentIndex < 2; parentIndex++ {
			edges = append(edges,
				SeederEdge{FromIndex: parentIndex, ToIndex: childIndex, RelationType: entities.RelationChild},
				SeederEdge{FromIndex: childIndex, ToIndex: parentIndex, RelationType: entities.RelationParent},
			)
		}

		events = append(events, SeederEvent{
			MemberIndex: childIndex,
			Title:       "Born in " + city,
			EventType:   entities.EventBirth,
			EventDate:   childBirth,
			Location:    city,
		})
	}

	return FamilyBundle{Members: members, Edges: edges, Events: events}
}

func randomDate(minYear, maxYear int) time.Time {
	year := minYear + rand.Intn(maxYear-minYear+1)
	return time.Date(year, time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC)
}
