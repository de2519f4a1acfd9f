package plan

const kyotoTwoDayPlan = `{
  "title": "Autumn Kyoto with friends",
  "days": [
    {
      "day": 1,
      "schedule": [
        {"time": "09:00", "place": "Fushimi Inari Taisha", "description": "Walk the torii gate trail early.", "lat": 34.9671, "lng": 135.7727},
        {"time": "12:30", "place": "Nishiki Market", "description": "Graze through local street food.", "lat": 35.0050, "lng": 135.7649}
      ]
    },
    {
      "day": 2,
      "schedule": [
        {"time": "10:00", "place": "Arashiyama Bamboo Grove", "description": "Stroll the bamboo paths.", "lat": 35.0170, "lng": 135.6713}
      ]
    }
  ],
  "hotels": [
    {"name": "Hotel Gion", "area": "Gion", "price": "about 15,000 JPY per night", "features": ["central", "onsen"], "lat": 35.0037, "lng": 135.7788},
    {"name": "Station Inn", "area": "Kyoto Station", "price": "about 9,000 JPY per night", "features": ["access"], "lat": 34.9858, "lng": 135.7588}
  ],
  "unexpected": {"ignored": true}
}`

const oneDayPlan = `{
  "title": "Day trip",
  "days": [{"day": 1, "schedule": [{"time": "10:00", "place": "Park", "description": "Relax.", "lat": 1.5, "lng": 2.5}]}],
  "hotels": [{"name": "Inn", "area": "Center", "price": "cheap", "features": [], "lat": 1.5, "lng": 2.5}]
}`

func kyotoRequest() TravelRequest {
	return TravelRequest{
		Destination: "Kyoto",
		Duration:    "1 night 2 days",
		Budget:      "moderate",
		Companions:  "friends",
		Style:       []string{"food"},
	}
}
