package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

const (
	defaultDatabase   = "utxo_intelligence"
	walletsCollection = "wallets"
)

// MongoStore persists wallets in a MongoDB collection, one document per
// wallet keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type walletDoc struct {
	Name      string        `bson:"name"`
	UTXOs     []wallet.UTXO `bson:"utxos"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and returns a wallet store.
// If database is empty, "utxo_intelligence" is used.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = defaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "failed to connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "failed to reach mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(walletsCollection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, w *wallet.Wallet) error {
	if err := errors.ValidateWalletName(w.Name); err != nil {
		return err
	}

	doc := walletDoc{Name: w.Name, UTXOs: w.UTXOs, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"name": w.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "failed to save wallet")
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (*wallet.Wallet, error) {
	if err := errors.ValidateWalletName(name); err != nil {
		return nil, err
	}

	var doc walletDoc
	if err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(errors.ErrCodeWalletNotFound, "wallet not found: %s", name)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "failed to load wallet")
	}
	return wallet.New(doc.Name, doc.UTXOs)
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1}).SetSort(bson.M{"name": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "failed to list wallets")
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to decode wallet name")
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "failed to iterate wallets")
	}
	return names, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateWalletName(name); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "failed to delete wallet")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeWalletNotFound, "wallet not found: %s", name)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
