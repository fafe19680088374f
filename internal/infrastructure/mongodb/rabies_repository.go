// Package mongodb implementa el registro de la clínica antirrábica sobre MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

const (
	patientsCollection = "rabies_patients"
	countersCollection = "counters"
)

// Client conexión a MongoDB con la base de la clínica.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect abre la conexión y verifica con ping.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: conectar: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Close cierra la conexión.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// RabiesRepo implementa repository.RabiesRepository.
type RabiesRepo struct {
	patients *mongo.Collection
	counters *mongo.Collection
}

// NewRabiesRepo crea el repositorio y sus índices.
func NewRabiesRepo(ctx context.Context, c *Client) (*RabiesRepo, error) {
	r := &RabiesRepo{
		patients: c.db.Collection(patientsCollection),
		counters: c.db.Collection(countersCollection),
	}
	_, err := r.patients.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fiscal_year", Value: 1}, {Key: "registration_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "bite_date", Value: -1}}},
		{Keys: bson.D{{Key: "doses.due_date", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb: índices: %w", err)
	}
	return r, nil
}

var _ repository.RabiesRepository = (*RabiesRepo)(nil)

// Create inserta el paciente.
func (r *RabiesRepo) Create(ctx context.Context, p *entity.RabiesPatient) error {
	if _, err := r.patients.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("mongodb: insertar paciente: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *RabiesRepo) GetByID(ctx context.Context, id string) (*entity.RabiesPatient, error) {
	var p entity.RabiesPatient
	err := r.patients.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb: obtener paciente: %w", err)
	}
	return &p, nil
}

// Update reemplaza el documento solo si nadie lo modificó desde prevUpdatedAt.
func (r *RabiesRepo) Update(ctx context.Context, p *entity.RabiesPatient, prevUpdatedAt time.Time) error {
	res, err := r.patients.ReplaceOne(ctx, bson.M{"_id": p.ID, "updated_at": prevUpdatedAt}, p)
	if err != nil {
		return fmt.Errorf("mongodb: actualizar paciente: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.patients.CountDocuments(ctx, bson.M{"_id": p.ID})
		if err != nil {
			return fmt.Errorf("mongodb: actualizar paciente: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

// List pacientes del filtro, los más recientes primero.
func (r *RabiesRepo) List(ctx context.Context, f repository.RabiesFilter) ([]*entity.RabiesPatient, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bite_date", Value: -1}, {Key: "registration_no", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit)).SetSkip(int64(f.Offset))
	}
	return r.find(ctx, listFilter(f), opts)
}

// ListWithDosesDue pacientes con alguna dosis sin aplicar cuya fecha es anterior a before.
func (r *RabiesRepo) ListWithDosesDue(ctx context.Context, before time.Time) ([]*entity.RabiesPatient, error) {
	filter := bson.M{"doses": bson.M{"$elemMatch": bson.M{
		"given_date": bson.M{"$exists": false},
		"due_date":   bson.M{"$lt": before},
	}}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "registration_no", Value: 1}}))
}

// NextRegistrationNo contador atómico por año fiscal.
func (r *RabiesRepo) NextRegistrationNo(ctx context.Context, fiscalYear string) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "rabies:" + fiscalYear},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("mongodb: número de registro: %w", err)
	}
	return doc.Seq, nil
}

func (r *RabiesRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.RabiesPatient, error) {
	cur, err := r.patients.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listar pacientes: %w", err)
	}
	defer cur.Close(ctx)
	out := make([]*entity.RabiesPatient, 0)
	for cur.Next(ctx) {
		var p entity.RabiesPatient
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("mongodb: decodificar paciente: %w", err)
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func listFilter(f repository.RabiesFilter) bson.M {
	filter := bson.M{}
	if f.FiscalYear != "" {
		filter["fiscal_year"] = f.FiscalYear
	}
	bite := bson.M{}
	if f.From != nil {
		bite["$gte"] = *f.From
	}
	if f.To != nil {
		bite["$lt"] = *f.To
	}
	if len(bite) > 0 {
		filter["bite_date"] = bite
	}
	if f.Search != "" {
		rx := ciRegex(f.Search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"phone": rx}, bson.M{"address": rx}}
	}
	return filter
}

func ciRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
