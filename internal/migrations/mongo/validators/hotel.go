package validators

import "go.mongodb.org/mongo-driver/bson"

var HotelValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"city",
			"address",
			"isActive",
			"rooms",
			"createdAt",
			"updatedAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 80,
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"isActive": bson.M{
				"bsonType": "bool",
			},

			"rooms": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{
						"roomNumber",
						"type",
						"pricePerNight",
						"capacity",
						"isActive",
						"isAvailable",
						"status",
					},
					"properties": bson.M{
						"roomNumber": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 20,
						},
						"type": bson.M{
							"enum": []string{"single", "double", "suite", "deluxe"},
						},
						"pricePerNight": bson.M{
							"bsonType": "decimal",
						},
						"taxes": bson.M{
							"bsonType": "decimal",
						},
						"capacity": bson.M{
							"bsonType": "int",
							"minimum":  1,
							"maximum":  20,
						},
						"isActive": bson.M{
							"bsonType": "bool",
						},
						"isAvailable": bson.M{
							"bsonType": "bool",
						},
						"status": bson.M{
							"enum": []string{"available", "occupied", "maintenance"},
						},
						"amenities": bson.M{
							"bsonType": "array",
							"items": bson.M{
								"bsonType": "string",
							},
						},
					},
				},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
