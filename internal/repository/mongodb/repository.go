package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

// Collection names of the hauling database.
const (
	EmployeesCollection    = "employees"
	GroupsCollection       = "groups"
	DriversCollection      = "drivers"
	TravelsCollection      = "travels"
	DebtsCollection        = "debts"
	LandsCollection        = "lands"
	PlatesCollection       = "plates"
	DestinationsCollection = "destinations"
	ReportsCollection      = "summary_reports"
)

// RecordCollections lists the collections a Snapshot is read from.
var RecordCollections = []string{
	EmployeesCollection,
	GroupsCollection,
	DriversCollection,
	TravelsCollection,
	DebtsCollection,
	LandsCollection,
	PlatesCollection,
	DestinationsCollection,
}

// Repository defines the read and report storage operations the services use.
type Repository interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
	SaveSummaryReport(ctx context.Context, report models.SummaryReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database

	Employees    *Collection[models.Employee]
	Groups       *Collection[models.Group]
	Drivers      *Collection[models.Driver]
	Travels      *Collection[models.Travel]
	Debts        *Collection[models.Debt]
	Lands        *Collection[models.Land]
	Plates       *Collection[models.Plate]
	Destinations *Collection[models.Destination]
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return newRepository(client, client.Database(dbName)), nil
}

func newRepository(client *mongo.Client, db *mongo.Database) *MongoDBRepository {
	return &MongoDBRepository{
		client:       client,
		db:           db,
		Employees:    &Collection[models.Employee]{coll: db.Collection(EmployeesCollection)},
		Groups:       &Collection[models.Group]{coll: db.Collection(GroupsCollection)},
		Drivers:      &Collection[models.Driver]{coll: db.Collection(DriversCollection)},
		Travels:      &Collection[models.Travel]{coll: db.Collection(TravelsCollection)},
		Debts:        &Collection[models.Debt]{coll: db.Collection(DebtsCollection)},
		Lands:        &Collection[models.Land]{coll: db.Collection(LandsCollection)},
		Plates:       &Collection[models.Plate]{coll: db.Collection(PlatesCollection)},
		Destinations: &Collection[models.Destination]{coll: db.Collection(DestinationsCollection)},
	}
}

// LoadSnapshot reads every record collection. The reads are not a
// transaction; a write landing mid-load shows up on the next refresh.
func (r *MongoDBRepository) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	var (
		snap models.Snapshot
		err  error
	)

	if snap.Employees, err = r.Employees.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Groups, err = r.Groups.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Drivers, err = r.Drivers.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Travels, err = r.Travels.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Debts, err = r.Debts.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Lands, err = r.Lands.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Plates, err = r.Plates.List(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Destinations, err = r.Destinations.List(ctx); err != nil {
		return models.Snapshot{}, err
	}

	return snap, nil
}

// SaveSummaryReport saves a weekly summary report to the database.
func (r *MongoDBRepository) SaveSummaryReport(ctx context.Context, report models.SummaryReport) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	collection := r.db.Collection(ReportsCollection)
	_, err := collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert summary report: %w", err)
	}
	return nil
}

// LatestSummaryReports returns up to limit reports, newest week first.
func (r *MongoDBRepository) LatestSummaryReports(ctx context.Context, limit int64) ([]models.SummaryReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week_start", Value: -1}}).SetLimit(limit)
	cursor, err := r.db.Collection(ReportsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find summary reports: %w", err)
	}

	reports := make([]models.SummaryReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode summary reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
