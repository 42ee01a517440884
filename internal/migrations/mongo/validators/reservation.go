package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"hotelId",
			"roomNumber",
			"checkInDate",
			"checkOutDate",
			"guests",
			"totalPrice",
			"status",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"hotelId": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"roomNumber": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"checkInDate": bson.M{
				"bsonType": "date",
			},

			"checkOutDate": bson.M{
				"bsonType": "date",
			},

			"guests": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{
						"fullName",
						"documentType",
						"documentNumber",
						"email",
					},
				},
			},

			"totalPrice": bson.M{
				"bsonType": "decimal",
			},

			"status": bson.M{
				"enum": []string{"pending", "confirmed", "cancelled", "completed"},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
