package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/timeline"
)

// Mongo defaults.
const (
	DefaultMongoDatabase     = "toldot"
	DefaultPeopleCollection  = "people"
	DefaultPeriodsCollection = "periods"
	mongoConnectTimeout      = 10 * time.Second
)

// MongoSource reads person records and periods from two collections. The
// database is taken from the URI path, defaulting to DefaultMongoDatabase.
// An empty periods collection falls back to the built-in catalogue.
type MongoSource struct {
	URI               string
	Database          string
	PeopleCollection  string
	PeriodsCollection string
	Logger            *log.Logger
}

func NewMongoSource(uri string, opts Options) *MongoSource {
	db := DefaultMongoDatabase
	if u, err := url.Parse(uri); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			db = name
		}
	}
	return &MongoSource{
		URI:               uri,
		Database:          db,
		PeopleCollection:  DefaultPeopleCollection,
		PeriodsCollection: DefaultPeriodsCollection,
		Logger:            opts.Logger,
	}
}

// Name omits credentials from the URI.
func (s *MongoSource) Name() string {
	u, err := url.Parse(s.URI)
	if err != nil {
		return "mongodb"
	}
	return u.Scheme + "://" + u.Host + "/" + s.Database
}

func (s *MongoSource) Load(ctx context.Context) (timeline.Dataset, error) {
	cctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return timeline.Dataset{}, apperr.Wrap(apperr.ErrCodeNetwork, err, "connect %s", s.Name())
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	db := client.Database(s.Database)

	var p Payload
	if err := findAll(ctx, db.Collection(s.PeopleCollection), func(cur *mongo.Cursor) error {
		var raw RawPerson
		if err := cur.Decode(&raw); err != nil {
			return err
		}
		p.People = append(p.People, raw)
		return nil
	}); err != nil {
		return timeline.Dataset{}, fmt.Errorf("read %s: %w", s.PeopleCollection, err)
	}

	if err := findAll(ctx, db.Collection(s.PeriodsCollection), func(cur *mongo.Cursor) error {
		var period timeline.Period
		if err := cur.Decode(&period); err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidDataset, err, "decode period")
		}
		p.Periods = append(p.Periods, period)
		return nil
	}); err != nil {
		return timeline.Dataset{}, fmt.Errorf("read %s: %w", s.PeriodsCollection, err)
	}

	return finish(s.Name(), p, s.Logger)
}

func findAll(ctx context.Context, coll *mongo.Collection, each func(*mongo.Cursor) error) error {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "query %s", coll.Name())
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		if err := each(cur); err != nil {
			return err
		}
	}
	return cur.Err()
}
